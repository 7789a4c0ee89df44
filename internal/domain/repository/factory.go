package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Members() MemberRepository
	Subscriptions() SubscriptionRepository
	Ledger() LedgerRepository
	Posts() PostRepository
	Media() MediaRepository
	Expenses() ExpenseRepository
	Exports() ExportRepository
}
