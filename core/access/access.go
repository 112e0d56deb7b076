// Package access holds the role based permission table of the club.
// It is the only place where module visibility per role is decided.
package access

import "strings"

type (
	Module string
	Group  string
	Level  int
)

// Access levels, ordered.
const (
	None Level = iota
	Read
	Write
)

// Modules
const (
	Dashboard    Module = "dashboard"
	Athletes     Module = "athletes"
	Programs     Module = "programs"
	Schedules    Module = "schedules"
	Attendance   Module = "attendance"
	Performance  Module = "performance"
	Notes        Module = "notes"
	Achievements Module = "achievements"
	Reports      Module = "reports"
	Users        Module = "users"
	Settings     Module = "settings"
)

// Role groups, matching the prefix of user roles (e.g. "coach:head" -> coach).
const (
	Admin   Group = "admin"
	Coach   Group = "coach"
	Athlete Group = "athlete"
)

var table = map[Module]map[Group]Level{
	Dashboard:    {Admin: Write, Coach: Read, Athlete: Read},
	Athletes:     {Admin: Write, Coach: Write, Athlete: Read},
	Programs:     {Admin: Write, Coach: Write, Athlete: Read},
	Schedules:    {Admin: Write, Coach: Write, Athlete: Read},
	Attendance:   {Admin: Write, Coach: Write},
	Performance:  {Admin: Write, Coach: Write},
	Notes:        {Admin: Write, Coach: Write},
	Achievements: {Admin: Write, Coach: Write, Athlete: Read},
	Reports:      {Admin: Write, Coach: Read},
	Users:        {Admin: Write},
	Settings:     {Admin: Write, Coach: Read},
}

func (l Level) String() string {
	switch l {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return "none"
	}
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// GroupOf returns the group of a role: the part before the first ":".
func GroupOf(role string) Group {
	return Group(strings.SplitN(role, ":", 2)[0])
}

// Of returns the highest access level granted to roles on module.
func Of(roles []string, module Module) Level {
	perms := table[module]
	lvl := None
	for _, role := range roles {
		if l := perms[GroupOf(role)]; l > lvl {
			lvl = l
		}
	}
	return lvl
}

// Can reports whether roles grant at least lvl on module.
func Can(roles []string, module Module, lvl Level) bool {
	return Of(roles, module) >= lvl && lvl > None
}

// Modules returns the access level of roles for every module, e.g. for building navigation menus.
func Modules(roles []string) map[Module]Level {
	perms := make(map[Module]Level, len(table))
	for module := range table {
		perms[module] = Of(roles, module)
	}
	return perms
}
