package entity

import "time"

// Profile is a household member's notification identity: a display name and
// the address every notification path delivers to. Created once by the
// onboarding handler and never otherwise mutated by this service.
type Profile struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
