package sprm

// Toggle operand values for boolean character properties.
const (
	ToggleOff      = 0x00
	ToggleOn       = 0x01
	ToggleBase     = 0x80
	ToggleOpposite = 0x81
)

// toggle resolves a toggle operand against the base value. The base is the
// value inherited from the style chain, never the value being mutated.
func toggle(operand uint8, base bool) (bool, bool) {
	switch operand {
	case ToggleOff:
		return false, true
	case ToggleOn:
		return true, true
	case ToggleBase:
		return base, true
	case ToggleOpposite:
		return !base, true
	default:
		return false, false
	}
}

// toggleField returns the address of the boolean selected by a toggle opcode
// in c, or nil if op is not a toggle.
func toggleField(c *Chp, op Opcode) *bool {
	switch op {
	case CFBold:
		return &c.Bold
	case CFItalic:
		return &c.Italic
	case CFStrike:
		return &c.Strike
	case CFDStrike:
		return &c.DStrike
	case CFOutline:
		return &c.Outline
	case CFShadow:
		return &c.Shadow
	case CFEmboss:
		return &c.Emboss
	case CFImprint:
		return &c.Imprint
	case CFSmallCaps:
		return &c.SmallCaps
	case CFCaps:
		return &c.Caps
	case CFVanish:
		return &c.Vanish
	case CFBoldBi:
		return &c.BoldBi
	case CFItalicBi:
		return &c.ItalicBi
	}
	return nil
}

// ApplyChp applies one character opcode to target. base supplies the values
// toggle operands 0x80 and 0x81 refer to; style is the owning style's resolved
// properties, used by sprmCPlain and sprmCMajority.
func ApplyChp(target, base, style *Chp, d Data) Result {
	if field := toggleField(target, d.Op); field != nil {
		v, ok := toggle(d.U8(), *toggleField(base, d.Op))
		if !ok {
			return ResultError
		}
		*field = v
		return ResultOk
	}

	switch d.Op {
	case CFRMarkDel:
		target.RMarkDel = d.U8() != 0
	case CFRMarkIns:
		target.RMarkIns = d.U8() != 0
	case CFFldVanish:
		target.FldVanish = d.U8() != 0
	case CFSpecVanish:
		target.SpecVanish = d.U8() != 0
	case CFWebHidden:
		target.WebHidden = d.U8() != 0
	case CFSpec:
		target.Spec = d.U8() != 0
	case CFObj:
		target.Obj = d.U8() != 0
	case CFOle2:
		target.Ole2 = d.U8() != 0
	case CFData:
		target.Data = d.U8() != 0
	case CFComplexScri:
		target.Complex = d.U8() != 0
	case CPicLocation:
		target.PicLocation = d.U32()
	case CIstd:
		if len(d.Operand) < 2 {
			return ResultError
		}
		target.Istd = d.U16()
	case CPlain:
		spec := target.Spec
		*target = *style
		target.Spec = spec
	case CKul:
		target.Underline = d.U8()
	case CIco:
		target.Color = IcoColor(d.U8())
	case CCv:
		if len(d.Operand) < 4 {
			return ResultError
		}
		target.Color = ColorRef(d.U32())
	case CHighlight:
		target.Highlight = d.U8()
	case CHps:
		if hps := d.U16(); hps > 0 {
			target.Hps = hps
		}
	case CHpsBi:
		if hps := d.U16(); hps > 0 {
			target.HpsBi = hps
		}
	case CHpsInc:
		hps := int(target.Hps) + int(int8(d.U8()))*2
		if hps < 2 {
			hps = 2
		}
		target.Hps = uint16(hps)
	case CHpsPos:
		target.HpsPos = d.I16()
	case CHpsKern:
		target.Kern = d.I16()
	case CIss:
		target.Iss = d.U8()
	case CDxaSpace:
		target.DxaSpace = d.I16()
	case CSfxText:
		target.Sfx = d.U8()
	case CRgFtc0:
		target.Ftc[0] = d.U16()
	case CRgFtc1:
		target.Ftc[1] = d.U16()
	case CRgFtc2:
		target.Ftc[2] = d.U16()
	case CFtcBi:
		target.FtcBi = d.U16()
	case CLid, CRgLid0, CRgLid0_80:
		target.Lid = d.U16()
	case CRgLid1, CRgLid1_80:
		target.LidFE = d.U16()
	case CLidBi:
		target.LidBi = d.U16()
	case CShd80:
		target.Shd = DecodeShd80(d.Operand)
	case CShd:
		if len(d.Operand) < 10 {
			return ResultError
		}
		target.Shd = DecodeShd(d.Operand)
	case CBrc80:
		target.Brc = DecodeBrc80(d.Operand)
	case CBrc:
		if len(d.Operand) < 8 {
			return ResultError
		}
		target.Brc = DecodeBrc(d.Operand)
	case CMajority:
		return applyMajority(target, style, d.Operand)
	default:
		return ResultUnsupported
	}
	return ResultOk
}

// applyMajority resets to the style value every listed property that the
// embedded grpprl would set to the value the run already has.
func applyMajority(target, style *Chp, grpprl []byte) Result {
	scratch := *style
	it := NewIterator(grpprl)
	for it.Next() {
		d := it.Sprm()
		if d.Op == CMajority {
			continue
		}
		ApplyChp(&scratch, style, style, d)
	}
	if it.Err() != nil {
		return ResultError
	}

	revert := func(t *bool, s, st bool) {
		if *t == s {
			*t = st
		}
	}
	revert(&target.Bold, scratch.Bold, style.Bold)
	revert(&target.Italic, scratch.Italic, style.Italic)
	revert(&target.Strike, scratch.Strike, style.Strike)
	revert(&target.SmallCaps, scratch.SmallCaps, style.SmallCaps)
	revert(&target.Outline, scratch.Outline, style.Outline)
	revert(&target.Shadow, scratch.Shadow, style.Shadow)
	revert(&target.Caps, scratch.Caps, style.Caps)
	if target.Hps == scratch.Hps {
		target.Hps = style.Hps
	}
	if target.Ftc == scratch.Ftc {
		target.Ftc = style.Ftc
	}
	if target.Underline == scratch.Underline {
		target.Underline = style.Underline
	}
	if target.Color == scratch.Color {
		target.Color = style.Color
	}
	if target.Lid == scratch.Lid {
		target.Lid = style.Lid
	}
	return ResultOk
}
