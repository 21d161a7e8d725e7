package lifecycle

import "fmt"

// StageChangeMessage renders the audit message recorded when a case moves
// into newStage. The old stage is not referenced.
func StageChangeMessage(newStage Stage) string {
	info := Info(newStage)
	return fmt.Sprintf("Your case has moved to %s. %s", info.Name, info.Description)
}

var statusMessages = map[string]string{
	"OPEN":      "Your case is now open and active.",
	"ON_HOLD":   "Your case has been placed on hold. We will update you shortly.",
	"COMPLETED": "Your case has been completed. Thank you for working with us.",
	"CANCELLED": "Your case has been cancelled.",
}

// StatusChangeMessage renders the audit message recorded when a case status
// changes. The status taxonomy is not closed at this layer, so unknown
// values fall back to a generic message instead of failing.
func StatusChangeMessage(newStatus string) string {
	if msg, ok := statusMessages[newStatus]; ok {
		return msg
	}
	return fmt.Sprintf("Case status updated to %s.", newStatus)
}
