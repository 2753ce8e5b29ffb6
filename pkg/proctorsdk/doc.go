// Package proctorsdk provides a typed Go client for the proctored quiz
// service, plus the request/response types shared with the server's HTTP
// handlers.
//
// Unauthenticated operations (Register, Login, Health) live on Client.
// Register and Login return a Session carrying the bearer token for
// everything else.
package proctorsdk
