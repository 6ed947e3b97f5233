package raffle

import "errors"

// Validation errors: bad input shape or bounds, rejected before any mutation.
var (
	ErrInvalidMetadataURI = errors.New("invalid metadata URI format")
	ErrMetadataURITooLong = errors.New("metadata URI exceeds maximum length")
	ErrTicketPriceTooLow  = errors.New("ticket price below minimum allowed")
	ErrTicketPriceTooHigh = errors.New("ticket price exceeds maximum allowed")
	ErrMinTicketsTooLow   = errors.New("minimum tickets must be greater than zero")
	ErrMinTicketsTooHigh  = errors.New("minimum tickets exceeds maximum allowed")
	ErrMaxTicketsTooLow   = errors.New("max tickets must be greater than or equal to min tickets")
	ErrEndTimeTooClose    = errors.New("end time must be at least one hour in the future")
	ErrDurationTooLong    = errors.New("raffle duration exceeds maximum allowed")
	ErrInvalidTicketCount = errors.New("ticket count must be greater than zero")
	ErrInvalidDataLength  = errors.New("winner data must be between 1 and 854 bytes")
)

// State-precondition errors: the raffle is not in the lifecycle position the
// operation requires.
var (
	ErrConfigExists                = errors.New("config already bootstrapped")
	ErrRaffleNotOpen               = errors.New("raffle is not open")
	ErrRaffleEnded                 = errors.New("raffle has ended")
	ErrRaffleNotEnded              = errors.New("raffle has not ended yet")
	ErrInsufficientTickets         = errors.New("insufficient tickets sold")
	ErrThresholdIsMet              = errors.New("minimum ticket threshold is met")
	ErrThresholdNotMet             = errors.New("minimum ticket threshold is not met")
	ErrRaffleNotExpired            = errors.New("raffle is not expired")
	ErrRaffleNotDrawing            = errors.New("raffle is not in drawing state")
	ErrRaffleNotDrawn              = errors.New("raffle has not been drawn yet")
	ErrNoWinningTicket             = errors.New("no winning ticket has been drawn")
	ErrInvalidWinningEntry         = errors.New("entry does not contain the winning ticket")
	ErrMaximumTicketsSold          = errors.New("all available tickets have been sold")
	ErrPurchaseExceedsThreshold    = errors.New("purchase would exceed the maximum ticket threshold")
	ErrEntryExists                 = errors.New("entry with this seed already exists")
	ErrTicketBalanceExists         = errors.New("ticket balance already opened for this raffle")
	ErrTicketBalanceNotInitialized = errors.New("ticket balance is not initialized for this user")
	ErrNoTicketsOwned              = errors.New("no tickets owned")
)

// Authorization errors: the caller is not the expected identity.
var (
	ErrNotManagementAuthority = errors.New("caller is not the management authority")
	ErrNotWinner              = errors.New("only the winner can submit data")
	ErrOwnerMismatch          = errors.New("caller does not own this ticket balance")
)

// Arithmetic and custody errors.
var (
	ErrOverflow          = errors.New("arithmetic overflow")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidTreasury   = errors.New("treasury does not match raffle")
	ErrInvalidEntropy    = errors.New("invalid entropy source")
	ErrTransferFailed    = errors.New("treasury transfer failed")
)

var validationErrors = []error{
	ErrInvalidMetadataURI, ErrMetadataURITooLong,
	ErrTicketPriceTooLow, ErrTicketPriceTooHigh,
	ErrMinTicketsTooLow, ErrMinTicketsTooHigh, ErrMaxTicketsTooLow,
	ErrEndTimeTooClose, ErrDurationTooLong,
	ErrInvalidTicketCount, ErrInvalidDataLength,
}

var stateErrors = []error{
	ErrConfigExists, ErrRaffleNotOpen, ErrRaffleEnded, ErrRaffleNotEnded,
	ErrInsufficientTickets, ErrThresholdIsMet, ErrThresholdNotMet,
	ErrRaffleNotExpired, ErrRaffleNotDrawing, ErrRaffleNotDrawn,
	ErrNoWinningTicket, ErrInvalidWinningEntry,
	ErrMaximumTicketsSold, ErrPurchaseExceedsThreshold,
	ErrEntryExists, ErrTicketBalanceExists, ErrTicketBalanceNotInitialized,
	ErrNoTicketsOwned,
}

var authorizationErrors = []error{
	ErrNotManagementAuthority, ErrNotWinner, ErrOwnerMismatch,
}

func isAny(err error, set []error) bool {
	for _, candidate := range set {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool { return isAny(err, validationErrors) }

// IsState reports whether err is a lifecycle precondition failure.
func IsState(err error) bool { return isAny(err, stateErrors) }

// IsAuthorization reports whether err is a caller identity failure.
func IsAuthorization(err error) bool { return isAny(err, authorizationErrors) }
