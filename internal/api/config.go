// internal/api/config.go
package api

import "fmt"

// FetchDefaults hakee palvelimen oletusparametrit lomakkeen pohjaksi
func (c *Client) FetchDefaults() (map[string]string, error) {
	return c.fetchParams("/get_config")
}

// FetchUserConfig hakee palvelimelle tallennetut käyttäjän parametrit.
// Tyhjä map tarkoittaa ettei tallennettuja asetuksia ole.
func (c *Client) FetchUserConfig() (map[string]string, error) {
	return c.fetchParams("/get_user_config")
}

// fetchParams decodes a params endpoint into string values.
// The server mixes numbers, bools and strings in the same object.
func (c *Client) fetchParams(path string) (map[string]string, error) {
	var raw map[string]interface{}
	if err := c.getJSON(path, &raw); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			values[k] = val
		case bool:
			if val {
				values[k] = "true"
			} else {
				values[k] = "false"
			}
		case float64:
			// JSON numbers arrive as float64, keep integers clean
			if val == float64(int64(val)) {
				values[k] = fmt.Sprintf("%d", int64(val))
			} else {
				values[k] = fmt.Sprintf("%g", val)
			}
		default:
			values[k] = fmt.Sprintf("%v", v)
		}
	}
	return values, nil
}
