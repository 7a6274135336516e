// Package display renders the device UI.
//
// The real board drives a 128x64 monochrome panel; this package models it as
// a small line-oriented Surface so the menu and orchestrator stay independent
// of pixel plumbing. The Terminal implementation draws the panel as a
// bordered text box on stdout and renders QR symbols with Unicode half
// blocks, two modules per character cell.
package display
