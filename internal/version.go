package internal

// Version is the current glossarymaker release
const Version = "0.4.0"
