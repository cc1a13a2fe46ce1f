package application

import "expvar"

// Counters exposed on /api/debug/vars.
var (
	loginAttempts = expvar.NewMap("auth_login_attempts")
	userWrites    = expvar.NewMap("user_writes")
)
