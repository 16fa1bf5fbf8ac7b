package commands

import "github.com/SergeyKozhin/events-assistant/internal/model"

// IsEventsAdmin reports whether identity may create, cancel or delete events.
func IsEventsAdmin(identity model.Identity, adminRole string) bool {
	return adminRole != "" && identity.HasRole(adminRole)
}
