package doc

import (
	"bytes"
	"encoding/binary"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/tsawler/wordbin/internal/bintable"
)

const (
	picfHeaderLen = 0x44
	mmShapeFile   = 0x66

	recBse       = 0xF007
	recBlipFirst = 0xF018
	recBlipLast  = 0xF117
	recBlipEMF   = 0xF01A
	recBlipWMF   = 0xF01B
	recBlipPICT  = 0xF01C
	recBlipDIB   = 0xF01F
	bseHeaderLen = 36
	maxBlipDepth = 8
)

// blipUIDs returns the number of 16-byte UIDs a BLIP record starts with.
func blipUIDs(recType, inst uint16) int {
	switch recType {
	case recBlipEMF:
		if inst == 0x3D5 {
			return 2
		}
	case recBlipWMF:
		if inst == 0x217 {
			return 2
		}
	case recBlipPICT:
		if inst == 0x543 {
			return 2
		}
	default:
		if inst&1 != 0 {
			return 2
		}
	}
	return 1
}

// readPicture decodes the picture whose PICF starts at off in the Data stream.
func (d *Document) readPicture(off uint32) (Image, bool) {
	if uint64(off)+picfHeaderLen > uint64(len(d.data)) {
		return Image{}, false
	}
	picf := d.data[off:]
	lcb := bintable.U32At(picf, 0)
	cbHeader := bintable.U16At(picf, 4)
	if lcb < uint32(cbHeader) || uint64(lcb) > uint64(len(picf)) || cbHeader < picfHeaderLen {
		return Image{}, false
	}
	img := Image{
		GoalWidth:  int(int16(bintable.U16At(picf, 28))),
		GoalHeight: int(int16(bintable.U16At(picf, 30))),
	}
	mx, my := int(bintable.U16At(picf, 32)), int(bintable.U16At(picf, 34))
	if mx > 0 {
		img.GoalWidth = img.GoalWidth * mx / 1000
	}
	if my > 0 {
		img.GoalHeight = img.GoalHeight * my / 1000
	}

	body := picf[cbHeader:lcb]
	if mm := bintable.U16At(picf, 6); mm == mmShapeFile && len(body) > 0 {
		n := int(body[0])
		if 1+n <= len(body) {
			img.Name = string(body[1 : 1+n])
			body = body[1+n:]
		}
	}
	data, ok := findBlip(body, 0)
	if !ok {
		return Image{}, false
	}
	img.Data = data
	img.MIME, img.Ext = sniffImage(data)
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		img.Width, img.Height = cfg.Width, cfg.Height
	}
	return img, true
}

// findBlip walks OfficeArt records and returns the first BLIP payload.
func findBlip(b []byte, depth int) ([]byte, bool) {
	if depth > maxBlipDepth {
		return nil, false
	}
	for len(b) >= 8 {
		verInst := binary.LittleEndian.Uint16(b)
		recType := binary.LittleEndian.Uint16(b[2:])
		recLen := binary.LittleEndian.Uint32(b[4:])
		body := b[8:]
		if uint64(recLen) > uint64(len(body)) {
			recLen = uint32(len(body))
		}
		body = body[:recLen]
		inst := verInst >> 4

		switch {
		case verInst&0x0F == 0x0F:
			if data, ok := findBlip(body, depth+1); ok {
				return data, true
			}
		case recType == recBse:
			if len(body) > bseHeaderLen {
				cbName := int(body[33])
				if bseHeaderLen+cbName <= len(body) {
					if data, ok := findBlip(body[bseHeaderLen+cbName:], depth+1); ok {
						return data, true
					}
				}
			}
		case recType >= recBlipFirst && recType <= recBlipLast:
			return blipPayload(recType, inst, body)
		}
		b = b[8+recLen:]
	}
	return nil, false
}

// blipPayload strips the BLIP header: the UIDs, then a tag byte for bitmaps
// or a 34-byte metafile header.
func blipPayload(recType, inst uint16, body []byte) ([]byte, bool) {
	skip := 16 * blipUIDs(recType, inst)
	switch recType {
	case recBlipEMF, recBlipWMF, recBlipPICT:
		skip += 34
	default:
		skip++
	}
	if skip >= len(body) {
		return nil, false
	}
	data := body[skip:]
	if recType == recBlipDIB {
		data = dibToBMP(data)
	}
	return data, true
}

// dibToBMP prefixes a device-independent bitmap with a BITMAPFILEHEADER.
func dibToBMP(dib []byte) []byte {
	if len(dib) < 40 {
		return dib
	}
	headerSize := binary.LittleEndian.Uint32(dib)
	bitCount := binary.LittleEndian.Uint16(dib[14:])
	colors := binary.LittleEndian.Uint32(dib[32:])
	if colors == 0 && bitCount <= 8 {
		colors = 1 << bitCount
	}
	bits := 14 + headerSize + 4*colors

	out := make([]byte, 14+len(dib))
	out[0], out[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(out[2:], uint32(len(out)))
	binary.LittleEndian.PutUint32(out[10:], bits)
	copy(out[14:], dib)
	return out
}

// sniffImage returns the MIME type and extension of a payload.
func sniffImage(data []byte) (string, string) {
	kind, err := filetype.Match(data)
	if err == nil && kind != filetype.Unknown && kind.Extension != "" {
		return kind.MIME.Value, kind.Extension
	}
	switch {
	case len(data) >= 44 && binary.LittleEndian.Uint32(data) == 1 && string(data[40:44]) == " EMF":
		return "image/emf", "emf"
	case len(data) >= 4 && binary.LittleEndian.Uint32(data) == 0x9AC6CDD7:
		return "image/wmf", "wmf"
	}
	return "application/octet-stream", "bin"
}

// imageExt returns the usual extension of a MIME type.
func imageExt(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}
	return "bin"
}

// pictureAt resolves the picture of a special character run.
func (d *Document) pictureAt(cp, loc uint32) (Image, bool) {
	img, ok := d.readPicture(loc)
	if !ok {
		d.diag.UnreadablePictures++
		d.log.Debug("Picture unreadable", zap.Uint32("cp", cp), zap.Uint32("offset", loc))
		return Image{}, false
	}
	img.CP = cp
	if img.Ext == "bin" {
		img.Ext = imageExt(img.MIME)
	}
	return img, true
}
