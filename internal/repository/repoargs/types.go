package repoargs

type RepositoryName string

const (
	AccountRepoName    RepositoryName = "account"
	WalletRepoName     RepositoryName = "wallet"
	WithdrawalRepoName RepositoryName = "withdrawal"
	InvestmentRepoName RepositoryName = "investment"
)
