package instance

import "os"

// GetID returns the serving instance identifier or a default value.
func GetID() string {
	if id := os.Getenv("PHARMAFLOW_INSTANCE_ID"); id != "" {
		return id
	}
	return "api-0"
}
