package models

// NamespaceCamt05300102 is the XML namespace of camt.053.001.02 documents.
const NamespaceCamt05300102 = "urn:iso:std:iso:20022:tech:xsd:camt.053.001.02"

// Credit/debit indicators
const (
	Credit CreditDebitIndicator = "CRDT"
	Debit  CreditDebitIndicator = "DBIT"
)

// Entry statuses
const (
	StatusBooked  = "BOOK"
	StatusPending = "PDNG"
	StatusInfo    = "INFO"
)

// Balance type codes
const (
	BalanceOpeningBooked    = "OPBD"
	BalanceClosingBooked    = "CLBD"
	BalanceClosingAvailable = "CLAV"
	BalanceInterimBooked    = "ITBD"
)

// Bank transaction domain codes
const (
	DomainPayments       = "PMNT"
	DomainAccountMgmt    = "ACMT"
	DomainCashManagement = "CAMT"
)

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
