package domain

import "strings"

// AwardType identifies one award category. Each category holds at most one
// winning submission at a time.
type AwardType int

const (
	// AwardTypeUnspecified represents an invalid award type.
	AwardTypeUnspecified AwardType = iota
	// AwardTypeBestOral is the best oral presentation award.
	AwardTypeBestOral
	// AwardTypeBestPoster is the best poster presentation award.
	AwardTypeBestPoster
	// AwardTypePeoplesChoice is the highest overall average score across all
	// submission types. It proxies an audience choice; no voting exists.
	AwardTypePeoplesChoice
)

// String returns the canonical text stored in the awards table.
func (t AwardType) String() string {
	switch t {
	case AwardTypeBestOral:
		return "BEST_ORAL"
	case AwardTypeBestPoster:
		return "BEST_POSTER"
	case AwardTypePeoplesChoice:
		return "PEOPLES_CHOICE"
	default:
		return ""
	}
}

// ParseAwardType maps stored text to an AwardType.
func ParseAwardType(value string) AwardType {
	switch strings.TrimSpace(value) {
	case "BEST_ORAL":
		return AwardTypeBestOral
	case "BEST_POSTER":
		return AwardTypeBestPoster
	case "PEOPLES_CHOICE":
		return AwardTypePeoplesChoice
	default:
		return AwardTypeUnspecified
	}
}

// AwardTypes lists every category in persistence order.
func AwardTypes() []AwardType {
	return []AwardType{AwardTypeBestOral, AwardTypeBestPoster, AwardTypePeoplesChoice}
}
