package domain

// AtsType identifies the applicant-tracking platform behind a career site.
type AtsType int

const (
	AtsUnknown AtsType = iota
	AtsWorkday
	AtsGreenhouse
	AtsLever
	AtsSmartRecruiters
	AtsSuccessFactors
	AtsTaleo
	AtsIcims
)

func (t AtsType) String() string {
	switch t {
	case AtsWorkday:
		return "Workday"
	case AtsGreenhouse:
		return "Greenhouse"
	case AtsLever:
		return "Lever"
	case AtsSmartRecruiters:
		return "SmartRecruiters"
	case AtsSuccessFactors:
		return "SuccessFactors"
	case AtsTaleo:
		return "Taleo"
	case AtsIcims:
		return "iCIMS"
	default:
		return "Unknown"
	}
}
