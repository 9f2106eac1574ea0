// Package dotenv parses .env-style files into a state.VarStore.
//
// Each line is stripped of its terminator, skipped when blank or a full-line
// comment, stripped of any unquoted trailing `#` comment, split on the first
// `=`, normalized, and finally has its `${NAME}` placeholders resolved against
// entries loaded earlier. Env is the handle applications hold to load, query
// and release a store.
package dotenv
