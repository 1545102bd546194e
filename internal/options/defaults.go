package options

// Option IDs of the built-in catalogue
const (
	IDPersonalization = "ewbf_personalization_equihash"
	IDDeveloperFee    = "ewbf_developer_fee"
	IDEexit           = "ewbf_eexit"
	IDSolver          = "ewbf_solver"
	IDIntensity       = "ewbf_intensity"
	IDPowerCalc       = "ewbf_powercalc"
	IDTempLimit       = "ewbf_templimit"
	IDTempUnits       = "ewbf_tempunits"
)

// DefaultPackage returns a fresh copy of the built-in catalogue
func DefaultPackage() Package {
	return Package{
		General: []Option{
			// Equihash personalization string, 8 characters
			{Kind: KindSingleParam, ID: IDPersonalization, ShortName: "--pers"},
			// Developer fee in percent, decimals allowed (0, 1, 2.5 ...)
			{Kind: KindSingleParam, ID: IDDeveloperFee, ShortName: "--fee"},
			{Kind: KindSingleParam, ID: IDEexit, ShortName: "--eexit"},
			{Kind: KindMultiParam, ID: IDSolver, ShortName: "--solver", DefaultValue: "0", Delimiter: " "},
			{Kind: KindMultiParam, ID: IDIntensity, ShortName: "--intensity", DefaultValue: "64", Delimiter: " "},
			{Kind: KindFlag, ID: IDPowerCalc, ShortName: "--pec"},
		},
		Temperature: []Option{
			{Kind: KindSingleParam, ID: IDTempLimit, ShortName: "--templimit", DefaultValue: "90"},
			{Kind: KindSingleParam, ID: IDTempUnits, ShortName: "--tempunits", DefaultValue: "C"},
		},
	}
}
