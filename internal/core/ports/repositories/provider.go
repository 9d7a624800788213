package repositories

// RepositoryProvider bundles the store adapter facades handed to the service
// layer at startup.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	LedgerRepo      LedgerRepositoryFacade
	ActivityRepo    ActivityRepositoryFacade
	AchievementRepo AchievementRepositoryFacade
	ProductRepo     ProductRepositoryFacade
	Notifier        Notifier
}
