// Package glossary defines the glossary entry type and the local,
// network-free operations on a glossary: persistence, merging, regex
// hanja discovery, frequency counting, sorting, name correction and
// reference file loading.
package glossary
