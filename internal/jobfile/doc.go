// Package jobfile reads search jobs from YAML or CUE files.
//
// A job names the ciphertext, the cribs and everything known about the key.
// Per-rotor fields are in display order, leftmost rotor first. An empty
// slot, or "*", means nothing is known about it:
//
//	name: code1
//	ciphertext: DMEXBMKYCVPNQBEDHXVPZGKMTFFBJRPJTLHLCHOTKOYXGGHZ
//	cribs: [SECRETS]
//	rotors: [[Beta], [Gamma], [V]]
//	positions: [M, J, M]
//	ring_settings: [[4], [2], [14]]
//	plugboard: [KI, XN, FL]
//
// Plugboard tokens may leave a letter unknown with "?", as in "A?" or "??".
// YAML reads "?" specially, so quote such tokens in a flow list:
// plugboard: ["KI", "X?"].
//
// Fields left out are fully open, except the plugboard, which defaults to
// no leads. Loading validates the file and the constraints it describes,
// so a loaded job is ready to search.
package jobfile
