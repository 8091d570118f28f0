// Package actions defines the concrete composite actions the bot performs:
// delete, edit, read, list, login, and the info queries. Each action
// implements mwapi.Action: it builds requests and consumes response
// documents but performs no I/O. Action definitions are registered in the
// capability table at package initialization.
package actions
