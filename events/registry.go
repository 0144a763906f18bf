package events

import (
	"reflect"
)

var (
	nameToType    = make(map[string]EventType)
	typeToName    = make(map[EventType]string)
	typeToPayload = make(map[EventType]reflect.Type)
	registryInit  = false
)

// RegisterType maps a string name to an EventType and its payload struct type
// payloadInstance should be a pointer to the payload struct (e.g., &OrderPayload{})
// Pass nil if the event has no payload
func RegisterType(name string, et EventType, payloadInstance any) {
	nameToType[name] = et
	typeToName[et] = name
	if payloadInstance != nil {
		t := reflect.TypeOf(payloadInstance)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		typeToPayload[et] = t
	}
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the string name for an EventType
func GetEventName(et EventType) string {
	return typeToName[et]
}

// NewPayloadStruct returns a new pointer to a zero-value payload struct for the event type
// Returns nil if no payload is registered
func NewPayloadStruct(et EventType) any {
	t, ok := typeToPayload[et]
	if !ok {
		return nil
	}
	return reflect.New(t).Interface()
}

// InitRegistry populates the registry with all game events
// Must be called once at startup
func InitRegistry() {
	if registryInit {
		return
	}
	registryInit = true

	RegisterType("EventOrderGenerated", EventOrderGenerated, &OrderPayload{})
	RegisterType("EventOrderExpired", EventOrderExpired, &OrderPayload{})
	RegisterType("EventOrderAccepted", EventOrderAccepted, &OrderPayload{})
	RegisterType("EventOrderDeclined", EventOrderDeclined, &OrderPayload{})
	RegisterType("EventOrderCompleted", EventOrderCompleted, &OrderCompletedPayload{})
	RegisterType("EventPizzaMade", EventPizzaMade, &OrderPayload{})
	RegisterType("EventProximityChanged", EventProximityChanged, &ProximityPayload{})
	RegisterType("EventBalanceChanged", EventBalanceChanged, &BalancePayload{})
	RegisterType("EventExperienceGained", EventExperienceGained, &ExperiencePayload{})
	RegisterType("EventLevelUp", EventLevelUp, &LevelUpPayload{})
	RegisterType("EventItemPurchased", EventItemPurchased, &ItemPayload{})
	RegisterType("EventItemUpgraded", EventItemUpgraded, &ItemPayload{})
	RegisterType("EventItemSelected", EventItemSelected, &ItemPayload{})
}
