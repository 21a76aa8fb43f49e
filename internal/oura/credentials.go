package oura

// Credentials maps a user's wearable-account selector (oura_id) to the API
// key for that account. Shared by the daily batch and the live service.
type Credentials struct {
	Key1 string
	Key2 string
}

// Resolve returns the API key for the given oura_id, or false when no
// credential matches.
func (c Credentials) Resolve(ouraID int) (string, bool) {
	switch ouraID {
	case 1:
		if c.Key1 != "" {
			return c.Key1, true
		}
	case 2:
		if c.Key2 != "" {
			return c.Key2, true
		}
	}
	return "", false
}
