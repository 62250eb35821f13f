package native

// Exported functions of J2KEngine.dll. Everything except the wide translate
// entry ships with ezTrans XP itself; TranslateMMNTW is added by the EHND
// patch.
const (
	FreeMem         = "J2K_FreeMem"
	GetPriorDict    = "J2K_GetPriorDict"
	GetProperty     = "J2K_GetProperty"
	Initialize      = "J2K_Initialize"
	InitializeEx    = "J2K_InitializeEx"
	ReloadUserDict  = "J2K_ReloadUserDict"
	SetDelJPN       = "J2K_SetDelJPN"
	SetField        = "J2K_SetField"
	SetHnj2han      = "J2K_SetHnj2han"
	SetJWin         = "J2K_SetJWin"
	SetPriorDict    = "J2K_SetPriorDict"
	SetProperty     = "J2K_SetProperty"
	StopTranslation = "J2K_StopTranslation"
	Terminate       = "J2K_Terminate"
	TranslateChat   = "J2K_TranslateChat"
	TranslateFM     = "J2K_TranslateFM"
	TranslateMM     = "J2K_TranslateMM"
	TranslateMMEx   = "J2K_TranslateMMEx"
	TranslateMMNT   = "J2K_TranslateMMNT"
	TranslateMMNTW  = "J2K_TranslateMMNTW"
)

// EntryPoints lists every known export in a stable order.
var EntryPoints = []string{
	FreeMem, GetPriorDict, GetProperty, Initialize, InitializeEx,
	ReloadUserDict, SetDelJPN, SetField, SetHnj2han, SetJWin,
	SetPriorDict, SetProperty, StopTranslation, Terminate,
	TranslateChat, TranslateFM, TranslateMM, TranslateMMEx,
	TranslateMMNT, TranslateMMNTW,
}
