package common

// UnknownStr is the String() fallback for out-of-range enum values.
const UnknownStr = "unknown"

// TopLevel labels the root level of a mixture in messages.
const TopLevel = "top level mixture"
