// Command libdvote builds the C shared library used by the mobile plugins:
//
//	go build -buildmode=c-shared -o libdvote.so ./cmd/libdvote
//
// Every exported function that returns char* returns NULL on failure and a
// string that must be handed back to free_cstr otherwise. last_error
// describes the most recent failure in the whole process: the slot is shared
// by all threads, so a failure on one thread overwrites the message another
// thread has not read yet. Callers that need a reliable message serialise
// the failing call and last_error. Configuration comes from DVOTE_*
// environment variables and the TOML file named by DVOTE_CONFIG.
package main

func main() {}
