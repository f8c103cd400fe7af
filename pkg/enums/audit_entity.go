package enums

import "fmt"

// AuditEntity represents the kind of record an audit event points at.
type AuditEntity string

const (
	AuditEntityPig     AuditEntity = "PIG"
	AuditEntityLitter  AuditEntity = "LITTER"
	AuditEntityHealth  AuditEntity = "HEALTH"
	AuditEntitySow     AuditEntity = "SOW"
	AuditEntityFeedLog AuditEntity = "FEED_LOG"
	AuditEntitySupply  AuditEntity = "SUPPLY"
	AuditEntitySale    AuditEntity = "SALE"
	AuditEntityExpense AuditEntity = "EXPENSE"
)

var validAuditEntities = []AuditEntity{
	AuditEntityPig,
	AuditEntityLitter,
	AuditEntityHealth,
	AuditEntitySow,
	AuditEntityFeedLog,
	AuditEntitySupply,
	AuditEntitySale,
	AuditEntityExpense,
}

// String implements fmt.Stringer.
func (a AuditEntity) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AuditEntity.
func (a AuditEntity) IsValid() bool {
	for _, candidate := range validAuditEntities {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAuditEntity converts raw input into an AuditEntity.
func ParseAuditEntity(value string) (AuditEntity, error) {
	for _, candidate := range validAuditEntities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid audit entity %q", value)
}
