// Package nav decides which screen stack is shown from the session state
// alone. Logging out anywhere produces a logged-out state, which resolves to
// the auth stack; nothing needs a handle to reset navigation.
package nav

import "github.com/deepak75500/welledapp-freelance/internal/session"

type Stack int

const (
	StackSplash Stack = iota
	StackAuth
	StackHome
	StackAdmin
)

func (s Stack) String() string {
	switch s {
	case StackSplash:
		return "splash"
	case StackAuth:
		return "auth"
	case StackHome:
		return "home"
	case StackAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

type Screen string

const (
	ScreenSplash      Screen = "Splash"
	ScreenLogin       Screen = "Login"
	ScreenRegister    Screen = "Register"
	ScreenHome        Screen = "Home"
	ScreenHistory     Screen = "History"
	ScreenProfile     Screen = "Profile"
	ScreenLeaderboard Screen = "Leaderboard"
)

// Resolve maps session state to a stack.
func Resolve(st session.State) Stack {
	switch {
	case st.Loading:
		return StackSplash
	case st.User == nil:
		return StackAuth
	case st.User.IsAdmin():
		return StackAdmin
	default:
		return StackHome
	}
}

// Screens lists a stack's screens; the first is the initial screen.
func Screens(s Stack) []Screen {
	switch s {
	case StackAuth:
		return []Screen{ScreenLogin, ScreenRegister}
	case StackHome:
		return []Screen{ScreenHome, ScreenHistory, ScreenProfile}
	case StackAdmin:
		return []Screen{ScreenLeaderboard, ScreenProfile}
	default:
		return []Screen{ScreenSplash}
	}
}

// Initial returns the entry screen of s.
func Initial(s Stack) Screen {
	return Screens(s)[0]
}

// Contains reports whether screen belongs to stack s.
func Contains(s Stack, screen Screen) bool {
	for _, sc := range Screens(s) {
		if sc == screen {
			return true
		}
	}
	return false
}
