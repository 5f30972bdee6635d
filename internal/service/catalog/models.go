package catalog

// Entity имя коллекции справочника (сегмент URL)
type Entity string

const (
	EntityRooms           Entity = "rooms"
	EntityPackages        Entity = "packages"
	EntityClients         Entity = "clients"
	EntityStaff           Entity = "staff"
	EntityAccounts        Entity = "accounts"
	EntityAutomationRules Entity = "automation-rules"
)

// IsValid returns true for known collections
func (e Entity) IsValid() bool {
	switch e {
	case EntityRooms, EntityPackages, EntityClients, EntityStaff, EntityAccounts, EntityAutomationRules:
		return true
	}
	return false
}
