package services

// UnitOptions returns the list of quantity unit options.
var UnitOptions = []string{
	"m³",
	"m²",
	"m",
	"pc",
	"bag",
	"L",
	"kg",
	"roll",
	"sum",
	"day",
	"trip",
}

// RegionOptions lists the regions with seeded multipliers.
var RegionOptions = []string{
	"Nairobi",
	"Mombasa",
	"Kisumu",
	"Nakuru",
	"Eldoret",
}

// MixRatioOptions lists the common concrete mix ratios.
var MixRatioOptions = []string{
	"1:2:4",
	"1:3:6",
	"1:1.5:3",
	"1:4:8",
}

// ContractTypeOptions lists the supported contract types.
var ContractTypeOptions = []string{
	ContractFull,
	ContractLaborOnly,
}

// PlasterOptions lists the wall plastering choices.
var PlasterOptions = []string{
	PlasterNone,
	PlasterOneSide,
	PlasterBothSides,
}

// PaintSubtypeOptions maps each paint category to its valid subtypes.
func PaintSubtypeOptions(category string) []string {
	return append([]string(nil), paintSubtypes[category]...)
}
