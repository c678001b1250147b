package enum

import "encoding/json"

// Command is a discrete terminal action triggered by a keyboard shortcut.
// The browser front-end forwards raw key events; the dispatcher maps them to
// commands so the key bindings live in exactly one place.
type Command int

const (
	CommandNone           Command = 0
	CommandOpenSearch     Command = 1 // F3
	CommandOpenQuantity   Command = 2 // F4
	CommandNewSale        Command = 3 // F8
	CommandSaveSale       Command = 4 // F9
	CommandOpenPayment    Command = 5 // F10
	CommandRemoveSelected Command = 6 // Delete
)

func (c Command) String() string {
	names := [...]string{"None", "OpenSearch", "OpenQuantity", "NewSale", "SaveSale", "OpenPayment", "RemoveSelected"}
	if int(c) < 0 || int(c) >= len(names) {
		return "None"
	}
	return names[c]
}

func (c Command) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// CommandForKey maps a key event name to its command. Unbound keys map to
// CommandNone.
func CommandForKey(key string) Command {
	switch key {
	case "F3":
		return CommandOpenSearch
	case "F4":
		return CommandOpenQuantity
	case "F8":
		return CommandNewSale
	case "F9":
		return CommandSaveSale
	case "F10":
		return CommandOpenPayment
	case "Delete":
		return CommandRemoveSelected
	default:
		return CommandNone
	}
}
