package sprm

import "encoding/binary"

// ApplyPap applies one paragraph opcode to p.
func ApplyPap(p *Pap, d Data) Result {
	switch d.Op {
	case PIstd:
		if len(d.Operand) < 2 {
			return ResultError
		}
		p.Istd = d.U16()
	case PJc, PJc80:
		p.Jc = d.U8()
	case PFKeep:
		p.KeepLines = d.U8() != 0
	case PFKeepFollow:
		p.KeepNext = d.U8() != 0
	case PFPageBreakBefore:
		p.PageBreakBefore = d.U8() != 0
	case PFWidowControl:
		p.WidowControl = d.U8() != 0
	case PFNoLineNumb:
		p.NoLineNumbers = d.U8() != 0
	case PFBiDi:
		p.BiDi = d.U8() != 0
	case PFContextualSpacing:
		p.ContextualSpacing = d.U8() != 0
	case PIlvl:
		p.Ilvl = d.U8()
	case PIncLvl:
		p.Ilvl = uint8(int8(p.Ilvl) + int8(d.U8()))
	case PIlfo:
		if len(d.Operand) < 2 {
			return ResultError
		}
		p.Ilfo = d.I16()
	case PDxaLeft, PDxaLeft80:
		p.DxaLeft = int32(d.I16())
	case PDxaRight, PDxaRight80:
		p.DxaRight = int32(d.I16())
	case PDxaLeft1, PDxaLeft180:
		p.DxaLeft1 = int32(d.I16())
	case PNest, PNest80:
		p.DxaLeft += int32(d.I16())
		if p.DxaLeft < 0 {
			p.DxaLeft = 0
		}
	case PDyaLine:
		if len(d.Operand) < 4 {
			return ResultError
		}
		p.DyaLine = d.I16()
		p.MultLine = binary.LittleEndian.Uint16(d.Operand[2:]) != 0
	case PDyaBefore:
		p.DyaBefore = d.U16()
	case PDyaAfter:
		p.DyaAfter = d.U16()
	case POutLvl:
		p.OutlineLvl = d.U8()
	case PFInTable:
		p.InTable = d.U8() != 0
	case PFTtp:
		p.Ttp = d.U8() != 0
	case PFInnerTableCell:
		p.InnerCell = d.U8() != 0
	case PFInnerTtp:
		p.InnerTtp = d.U8() != 0
	case PItap:
		p.Itap = int32(d.U32())
		if p.Itap < 0 {
			p.Itap = 0
		}
	case PDtap:
		p.Itap += int32(d.U32())
		if p.Itap < 0 {
			p.Itap = 0
		}
	case PChgTabsPapx:
		return changeTabs(p, d.Operand, false)
	case PChgTabs:
		return changeTabs(p, d.Operand, true)
	case PShd80:
		p.Shd = DecodeShd80(d.Operand)
	case PShd:
		if len(d.Operand) < 10 {
			return ResultError
		}
		p.Shd = DecodeShd(d.Operand)
	case PBrcTop80:
		p.BrcTop = DecodeBrc80(d.Operand)
	case PBrcLeft80:
		p.BrcLeft = DecodeBrc80(d.Operand)
	case PBrcBottom80:
		p.BrcBottom = DecodeBrc80(d.Operand)
	case PBrcRight80:
		p.BrcRight = DecodeBrc80(d.Operand)
	case PBrcBetween80:
		p.BrcBetween = DecodeBrc80(d.Operand)
	case PBrcTop, PBrcLeft, PBrcBottom, PBrcRight, PBrcBetween:
		if len(d.Operand) < 8 {
			return ResultError
		}
		brc := DecodeBrc(d.Operand)
		switch d.Op {
		case PBrcTop:
			p.BrcTop = brc
		case PBrcLeft:
			p.BrcLeft = brc
		case PBrcBottom:
			p.BrcBottom = brc
		case PBrcRight:
			p.BrcRight = brc
		default:
			p.BrcBetween = brc
		}
	default:
		return ResultUnsupported
	}
	return ResultOk
}

// changeTabs deletes then inserts tab stops. The PAPX form lists only the
// deleted positions; the full form also carries a tolerance per deletion.
func changeTabs(p *Pap, b []byte, withClose bool) Result {
	if len(b) < 1 {
		return ResultError
	}
	nDel := int(b[0])
	b = b[1:]
	width := 2
	if withClose {
		width = 4
	}
	if len(b) < nDel*width+1 {
		return ResultError
	}
	del := make([]int16, nDel)
	var closes []int16
	for i := range del {
		del[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
	}
	if withClose {
		closes = make([]int16, nDel)
		for i := range closes {
			closes[i] = int16(binary.LittleEndian.Uint16(b[2*nDel+2*i:]))
		}
	}
	b = b[nDel*width:]
	nAdd := int(b[0])
	b = b[1:]
	if len(b) < 3*nAdd {
		return ResultError
	}

	kept := p.Tabs[:0:0]
	for _, t := range p.Tabs {
		if !tabDeleted(t.Pos, del, closes) {
			kept = append(kept, t)
		}
	}
	for i := 0; i < nAdd; i++ {
		pos := int16(binary.LittleEndian.Uint16(b[2*i:]))
		tbd := b[2*nAdd+i]
		t := TabStop{Pos: pos, Jc: tbd & 0x7, Leader: (tbd >> 3) & 0x7}
		kept = insertTab(kept, t)
	}
	p.Tabs = kept
	return ResultOk
}

func tabDeleted(pos int16, del, closes []int16) bool {
	for i, d := range del {
		tol := int16(0)
		if closes != nil {
			tol = closes[i]
		}
		if pos >= d-tol && pos <= d+tol {
			return true
		}
	}
	return false
}

// insertTab keeps tabs sorted by position, replacing an existing stop.
func insertTab(tabs []TabStop, t TabStop) []TabStop {
	for i := range tabs {
		if tabs[i].Pos == t.Pos {
			tabs[i] = t
			return tabs
		}
		if tabs[i].Pos > t.Pos {
			tabs = append(tabs, TabStop{})
			copy(tabs[i+1:], tabs[i:])
			tabs[i] = t
			return tabs
		}
	}
	return append(tabs, t)
}
