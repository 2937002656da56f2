// Package createfinesession opens a checkout session for an existing fine
// payment. Fines are created at return time without a session; this use case
// attaches one later so the user can actually pay the fine.
package createfinesession
