package usecase

// MaxPerPage re-exports maxPerPage for the external test package.
const MaxPerPage = maxPerPage
