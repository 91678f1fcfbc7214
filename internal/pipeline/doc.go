// Package pipeline drives a glossary run from chapter files to workbooks.
//
// A run loads the working glossary, merges the reference file, extracts
// nouns chunk by chunk, counts and sorts them, lets the model categorise,
// translate and guess hanja, converts hanja to simplified Chinese and
// finally writes the workbooks. The working glossary is saved after every
// step so an interrupted run continues where it stopped.
package pipeline
