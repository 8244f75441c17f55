package analysis

// Check ids accepted by the --disable flag. Disabling a check skips the
// rule entirely: no finding is recorded.
const (
	CheckCLAFiles        = "cla-files"
	CheckCLAPulls        = "cla-pulls"
	CheckDCOFiles        = "dco-files"
	CheckDCOPulls        = "dco-pulls"
	CheckInboundOutbound = "inbound-outbound"
	CheckLicenseFile     = "license-file"
	CheckContributions   = "contributions"
	CheckCommitAge       = "commit-age"
)

// Flag ids accepted by the --ignore flag. Ignoring a flag still records
// its findings but marks them so consumers can discount them.
const (
	FlagCLA             = "cla"
	FlagDCO             = "dco"
	FlagInboundOutbound = "inbound-outbound"
	FlagLicenseFile     = "license-file"
	FlagContributions   = "contributions"
	FlagCommitAge       = "commit-age"
)

// Checks lists every valid check id, in rule evaluation order.
var Checks = []string{
	CheckCLAFiles,
	CheckCLAPulls,
	CheckDCOFiles,
	CheckDCOPulls,
	CheckInboundOutbound,
	CheckLicenseFile,
	CheckContributions,
	CheckCommitAge,
}

// Flags lists every valid ignore id.
var Flags = []string{
	FlagCLA,
	FlagDCO,
	FlagInboundOutbound,
	FlagLicenseFile,
	FlagContributions,
	FlagCommitAge,
}

// ValidCheck reports whether id is a known check id.
func ValidCheck(id string) bool {
	return contains(Checks, id)
}

// ValidFlag reports whether id is a known ignore id.
func ValidFlag(id string) bool {
	return contains(Flags, id)
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
