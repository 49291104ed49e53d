package ledger

// InboundSource identifies where goods-in stock originates
type InboundSource string

const (
	InboundSourceSupplier InboundSource = "SUPPLIER"
	InboundSourceFactory  InboundSource = "FACTORY"
	InboundSourceReturn   InboundSource = "RETURN"
	InboundSourceTransfer InboundSource = "TRANSFER"
)

// String returns the string representation of InboundSource
func (s InboundSource) String() string {
	return string(s)
}

// IsValid returns true if the inbound source is a known value
func (s InboundSource) IsValid() bool {
	switch s {
	case InboundSourceSupplier, InboundSourceFactory, InboundSourceReturn, InboundSourceTransfer:
		return true
	}
	return false
}

// OutboundDestination identifies where goods-out stock goes
type OutboundDestination string

const (
	OutboundDestinationCustomer      OutboundDestination = "CUSTOMER"
	OutboundDestinationDeliveryAgent OutboundDestination = "DELIVERY_AGENT"
	OutboundDestinationTransfer      OutboundDestination = "TRANSFER"
	OutboundDestinationDamaged       OutboundDestination = "DAMAGED"
)

// String returns the string representation of OutboundDestination
func (d OutboundDestination) String() string {
	return string(d)
}

// IsValid returns true if the outbound destination is a known value
func (d OutboundDestination) IsValid() bool {
	switch d {
	case OutboundDestinationCustomer,
		OutboundDestinationDeliveryAgent,
		OutboundDestinationTransfer,
		OutboundDestinationDamaged:
		return true
	}
	return false
}

// ReturnReason identifies why goods came back
type ReturnReason string

const (
	ReturnReasonDamaged        ReturnReason = "DAMAGED"
	ReturnReasonExpired        ReturnReason = "EXPIRED"
	ReturnReasonWrongItem      ReturnReason = "WRONG_ITEM"
	ReturnReasonCustomerReturn ReturnReason = "CUSTOMER_RETURN"
)

// String returns the string representation of ReturnReason
func (r ReturnReason) String() string {
	return string(r)
}

// IsValid returns true if the return reason is a known value
func (r ReturnReason) IsValid() bool {
	switch r {
	case ReturnReasonDamaged, ReturnReasonExpired, ReturnReasonWrongItem, ReturnReasonCustomerReturn:
		return true
	}
	return false
}

// RequiresRestock returns true if returned goods go back into sellable
// stock. Damaged and expired goods are written off, the ledger records
// them but no quantity changes.
func (r ReturnReason) RequiresRestock() bool {
	switch r {
	case ReturnReasonWrongItem, ReturnReasonCustomerReturn:
		return true
	}
	return false
}

// AdjustmentReason identifies why stock was manually corrected
type AdjustmentReason string

const (
	AdjustmentReasonCorrection AdjustmentReason = "CORRECTION"
	AdjustmentReasonDamage     AdjustmentReason = "DAMAGE"
	AdjustmentReasonLoss       AdjustmentReason = "LOSS"
	AdjustmentReasonFound      AdjustmentReason = "FOUND"
	AdjustmentReasonAudit      AdjustmentReason = "AUDIT"
)

// String returns the string representation of AdjustmentReason
func (r AdjustmentReason) String() string {
	return string(r)
}

// IsValid returns true if the adjustment reason is a known value
func (r AdjustmentReason) IsValid() bool {
	switch r {
	case AdjustmentReasonCorrection,
		AdjustmentReasonDamage,
		AdjustmentReasonLoss,
		AdjustmentReasonFound,
		AdjustmentReasonAudit:
		return true
	}
	return false
}

// AllowsNegativeResult returns true for reasons where the recorded count
// may legitimately drop below zero before the next audit reconciles it
func (r AdjustmentReason) AllowsNegativeResult() bool {
	switch r {
	case AdjustmentReasonLoss, AdjustmentReasonDamage:
		return true
	}
	return false
}
