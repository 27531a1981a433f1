// Package service holds the business logic of the auth service. Services are
// plain structs with exported dependencies, built once by the app package.
// Callers pass a Principal resolved by AccessControl; role checks happen
// before a service method is reached.
package service

import "time"

// nowUTC calls now, or time.Now when now is nil, and returns UTC.
func nowUTC(now func() time.Time) time.Time {
	if now != nil {
		return now().UTC()
	}
	return time.Now().UTC()
}
