// Package errors provides coded errors for initbot.
//
// Every error carries a Code, a message safe to show in chat, an optional
// cause and metadata. Match errors attach the list of valid candidates under
// MetaCandidates so callers can render it.
//
//	if errors.IsAmbiguousMatch(err) {
//		candidates := errors.GetCandidates(err)
//	}
package errors
