package sprm

// Paragraph opcodes.
const (
	PIstd               Opcode = 0x4600
	PIstdPermute        Opcode = 0xC601
	PIncLvl             Opcode = 0x2602
	PJc80               Opcode = 0x2403
	PFSideBySide        Opcode = 0x2404
	PFKeep              Opcode = 0x2405
	PFKeepFollow        Opcode = 0x2406
	PFPageBreakBefore   Opcode = 0x2407
	PIlvl               Opcode = 0x260A
	PIlfo               Opcode = 0x460B
	PFNoLineNumb        Opcode = 0x240C
	PChgTabsPapx        Opcode = 0xC60D
	PDxaRight80         Opcode = 0x840E
	PDxaLeft80          Opcode = 0x840F
	PNest80             Opcode = 0x4610
	PDxaLeft180         Opcode = 0x8411
	PDyaLine            Opcode = 0x6412
	PDyaBefore          Opcode = 0xA413
	PDyaAfter           Opcode = 0xA414
	PChgTabs            Opcode = 0xC615
	PFInTable           Opcode = 0x2416
	PFTtp               Opcode = 0x2417
	PDxaAbs             Opcode = 0x8418
	PDyaAbs             Opcode = 0x8419
	PDxaWidth           Opcode = 0x841A
	PPc                 Opcode = 0x261B
	PBrcTop80           Opcode = 0x6424
	PBrcLeft80          Opcode = 0x6425
	PBrcBottom80        Opcode = 0x6426
	PBrcRight80         Opcode = 0x6427
	PBrcBetween80       Opcode = 0x6428
	PBrcBar80           Opcode = 0x6629
	PFNoAutoHyph        Opcode = 0x242A
	PWHeightAbs         Opcode = 0x442B
	PDcs                Opcode = 0x442C
	PShd80              Opcode = 0x442D
	PDyaFromText        Opcode = 0x842E
	PDxaFromText        Opcode = 0x842F
	PFLocked            Opcode = 0x2430
	PFWidowControl      Opcode = 0x2431
	PFKinsoku           Opcode = 0x2433
	PFWordWrap          Opcode = 0x2434
	POutLvl             Opcode = 0x2640
	PFBiDi              Opcode = 0x2441
	PFNumRMIns          Opcode = 0x2443
	PHugePapx           Opcode = 0x6646
	PHugePapx2          Opcode = 0x6645
	PItap               Opcode = 0x6649
	PDtap               Opcode = 0x664A
	PFInnerTableCell    Opcode = 0x244B
	PFInnerTtp          Opcode = 0x244C
	PShd                Opcode = 0xC64D
	PBrcTop             Opcode = 0xC64E
	PBrcLeft            Opcode = 0xC64F
	PBrcBottom          Opcode = 0xC650
	PBrcRight           Opcode = 0xC651
	PBrcBetween         Opcode = 0xC652
	PBrcBar             Opcode = 0xC653
	PDxaRight           Opcode = 0x845D
	PDxaLeft            Opcode = 0x845E
	PNest               Opcode = 0x465F
	PDxaLeft1           Opcode = 0x8460
	PJc                 Opcode = 0x2461
	PFContextualSpacing Opcode = 0x246D
)

// Character opcodes.
const (
	CFRMarkDel    Opcode = 0x0800
	CFRMarkIns    Opcode = 0x0801
	CFFldVanish   Opcode = 0x0802
	CPicLocation  Opcode = 0x6A03
	CFData        Opcode = 0x0806
	CFOle2        Opcode = 0x080A
	CHighlight    Opcode = 0x2A0C
	CFWebHidden   Opcode = 0x0811
	CFSpecVanish  Opcode = 0x0818
	CIstd         Opcode = 0x4A30
	CIstdPermute  Opcode = 0xCA31
	CPlain        Opcode = 0x2A33
	CFBold        Opcode = 0x0835
	CFItalic      Opcode = 0x0836
	CFStrike      Opcode = 0x0837
	CFOutline     Opcode = 0x0838
	CFShadow      Opcode = 0x0839
	CFSmallCaps   Opcode = 0x083A
	CFCaps        Opcode = 0x083B
	CFVanish      Opcode = 0x083C
	CKul          Opcode = 0x2A3E
	CDxaSpace     Opcode = 0x8840
	CIco          Opcode = 0x2A42
	CHps          Opcode = 0x4A43
	CHpsInc       Opcode = 0x2A44
	CHpsPos       Opcode = 0x4845
	CHpsPosAdj    Opcode = 0x2A46
	CMajority     Opcode = 0xCA47
	CIss          Opcode = 0x2A48
	CHpsKern      Opcode = 0x484B
	CRgFtc0       Opcode = 0x4A4F
	CRgFtc1       Opcode = 0x4A50
	CRgFtc2       Opcode = 0x4A51
	CFDStrike     Opcode = 0x2A53
	CFImprint     Opcode = 0x0854
	CFSpec        Opcode = 0x0855
	CFObj         Opcode = 0x0856
	CFEmboss      Opcode = 0x0858
	CSfxText      Opcode = 0x2859
	CFBoldBi      Opcode = 0x085C
	CFItalicBi    Opcode = 0x085D
	CFtcBi        Opcode = 0x4A5E
	CLidBi        Opcode = 0x485F
	CHpsBi        Opcode = 0x4A61
	CBrc80        Opcode = 0x6865
	CShd80        Opcode = 0x4866
	CRgLid0_80    Opcode = 0x486D
	CRgLid1_80    Opcode = 0x486E
	CCv           Opcode = 0x6870
	CShd          Opcode = 0xCA71
	CBrc          Opcode = 0xCA72
	CRgLid0       Opcode = 0x4873
	CRgLid1       Opcode = 0x4874
	CLid          Opcode = 0x4A41
	CFComplexScri Opcode = 0x0882
)

// Picture opcodes.
const (
	PicBrcl Opcode = 0x2E00
)

// Section opcodes.
const (
	SBkc          Opcode = 0x3009
	SFTitlePage   Opcode = 0x300A
	SCcolumns     Opcode = 0x500B
	SDxaColumns   Opcode = 0x900C
	SNfcPgn       Opcode = 0x300E
	SFPgnRestart  Opcode = 0x3011
	SLnc          Opcode = 0x3013
	SDyaHdrTop    Opcode = 0xB017
	SDyaHdrBottom Opcode = 0xB018
	SVjc          Opcode = 0x301A
	SPgnStart97   Opcode = 0x501C
	SBOrientation Opcode = 0x301D
	SXaPage       Opcode = 0xB01F
	SYaPage       Opcode = 0xB020
	SDxaLeft      Opcode = 0xB021
	SDxaRight     Opcode = 0xB022
	SDyaTop       Opcode = 0x9023
	SDyaBottom    Opcode = 0x9024
	SDzaGutter    Opcode = 0xB025
	SFBiDi        Opcode = 0x3228
	SPgnStart     Opcode = 0x7044
)

// Table opcodes.
const (
	TJc90               Opcode = 0x5400
	TDxaLeft            Opcode = 0x9601
	TDxaGapHalf         Opcode = 0x9602
	TFCantSplit90       Opcode = 0x3403
	TTableHeader        Opcode = 0x3404
	TTableBorders80     Opcode = 0xD605
	TDefTable10         Opcode = 0xD606
	TDyaRowHeight       Opcode = 0x9407
	TDefTable           Opcode = 0xD608
	TDefTableShd80      Opcode = 0xD609
	TTlp                Opcode = 0x740A
	TFBiDi              Opcode = 0x560B
	TDefTableShd        Opcode = 0xD612
	TTableBorders       Opcode = 0xD613
	TTableWidth         Opcode = 0xF614
	TSetBrc80           Opcode = 0xD620
	TInsert             Opcode = 0x7621
	TDelete             Opcode = 0x5622
	TDxaCol             Opcode = 0x7623
	TMerge              Opcode = 0x5624
	TSplit              Opcode = 0x5625
	TSetShd80           Opcode = 0x7627
	TSetShdOdd80        Opcode = 0x7628
	TTextFlow           Opcode = 0x7629
	TVertMerge          Opcode = 0xD62B
	TVertAlign          Opcode = 0xD62C
	TSetShd             Opcode = 0xD62D
	TSetShdOdd          Opcode = 0xD62E
	TSetBrc             Opcode = 0xD62F
	TCellPadding        Opcode = 0xD632
	TCellSpacingDefault Opcode = 0xD633
	TCellPaddingDefault Opcode = 0xD634
	TCellWidth          Opcode = 0xD635
	TFCellNoWrap        Opcode = 0xD639
	TFCantSplit         Opcode = 0x3644
	TJc                 Opcode = 0x548A
	TWidthBefore        Opcode = 0xF617
	TWidthAfter         Opcode = 0xF618
)

var opcodeNames = map[Opcode]string{
	PIstd: "sprmPIstd", PIncLvl: "sprmPIncLvl", PJc80: "sprmPJc80", PJc: "sprmPJc",
	PFKeep: "sprmPFKeep", PFKeepFollow: "sprmPFKeepFollow", PFPageBreakBefore: "sprmPFPageBreakBefore",
	PIlvl: "sprmPIlvl", PIlfo: "sprmPIlfo", PChgTabsPapx: "sprmPChgTabsPapx", PChgTabs: "sprmPChgTabs",
	PDxaLeft: "sprmPDxaLeft", PDxaRight: "sprmPDxaRight", PDxaLeft1: "sprmPDxaLeft1",
	PDyaLine: "sprmPDyaLine", PDyaBefore: "sprmPDyaBefore", PDyaAfter: "sprmPDyaAfter",
	PFInTable: "sprmPFInTable", PFTtp: "sprmPFTtp", PItap: "sprmPItap", PDtap: "sprmPDtap",
	PFInnerTableCell: "sprmPFInnerTableCell", PFInnerTtp: "sprmPFInnerTtp",
	PHugePapx: "sprmPHugePapx", POutLvl: "sprmPOutLvl", PShd: "sprmPShd", PShd80: "sprmPShd80",
	CFRMarkDel: "sprmCFRMarkDel", CFRMarkIns: "sprmCFRMarkIns", CFFldVanish: "sprmCFFldVanish",
	CPicLocation: "sprmCPicLocation", CIstd: "sprmCIstd", CPlain: "sprmCPlain",
	CFBold: "sprmCFBold", CFItalic: "sprmCFItalic", CFStrike: "sprmCFStrike",
	CFOutline: "sprmCFOutline", CFShadow: "sprmCFShadow", CFSmallCaps: "sprmCFSmallCaps",
	CFCaps: "sprmCFCaps", CFVanish: "sprmCFVanish", CKul: "sprmCKul", CIco: "sprmCIco",
	CHps: "sprmCHps", CMajority: "sprmCMajority", CIss: "sprmCIss", CRgFtc0: "sprmCRgFtc0",
	CFSpec: "sprmCFSpec", CCv: "sprmCCv", CShd: "sprmCShd", CHighlight: "sprmCHighlight",
	TDefTable: "sprmTDefTable", TDefTable10: "sprmTDefTable10", TSetBrc80: "sprmTSetBrc80",
	TSetBrc: "sprmTSetBrc", TMerge: "sprmTMerge", TSplit: "sprmTSplit", TVertMerge: "sprmTVertMerge",
	TVertAlign: "sprmTVertAlign", TCellPadding: "sprmTCellPadding", TDefTableShd80: "sprmTDefTableShd80",
	TDefTableShd: "sprmTDefTableShd", TDyaRowHeight: "sprmTDyaRowHeight", TTableHeader: "sprmTTableHeader",
	SBkc: "sprmSBkc", SXaPage: "sprmSXaPage", SYaPage: "sprmSYaPage", SDxaLeft: "sprmSDxaLeft",
	SDxaRight: "sprmSDxaRight",
}
