// Package deepluna is a translation toolchain for a visual-novel
// game's binary script and string-table archives: it extracts every
// JP text string together with the control-flow context it is emitted
// in, lets editors supply translations, and re-packs the string table
// so the game engine loads the translated text unmodified.
//
// See container, mzx, script, text, tldb and rewrite for the pipeline
// stages, and cmd/deepluna for the command-line front end.
package deepluna

// Version is the toolchain's release identifier. cmd/deepluna has no
// flag that prints it.
const Version = "0.1.0"
