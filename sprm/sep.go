package sprm

// ApplySep applies one section opcode to s.
func ApplySep(s *Sep, d Data) Result {
	switch d.Op {
	case SBkc:
		s.Bkc = d.U8()
	case SFTitlePage:
		s.TitlePage = d.U8() != 0
	case SCcolumns:
		s.Columns = d.I16()
	case SDxaColumns:
		s.DxaColumns = d.I16()
	case SNfcPgn:
		s.NfcPgn = d.U8()
	case SFPgnRestart:
		s.PgnRestart = d.U8() != 0
	case SPgnStart97:
		s.PgnStart = int32(d.U16())
	case SPgnStart:
		s.PgnStart = int32(d.U32())
	case SXaPage:
		s.XaPage = d.U16()
	case SYaPage:
		s.YaPage = d.U16()
	case SDxaLeft:
		s.DxaLeft = d.U16()
	case SDxaRight:
		s.DxaRight = d.U16()
	case SDyaTop:
		s.DyaTop = d.I16()
	case SDyaBottom:
		s.DyaBottom = d.I16()
	case SDyaHdrTop:
		s.DyaHdrTop = d.U16()
	case SDyaHdrBottom:
		s.DyaHdrBottom = d.U16()
	case SDzaGutter:
		s.DzaGutter = d.U16()
	case SBOrientation:
		s.Landscape = d.U8() == 2
	case SFBiDi:
		s.BiDi = d.U8() != 0
	case SVjc:
		s.Vjc = d.U8()
	default:
		return ResultUnsupported
	}
	return ResultOk
}
