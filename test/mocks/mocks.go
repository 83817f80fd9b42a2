// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `make mocks` from the root directory.
package mocks

//go:generate mockgen -source=../../internal/core/ports/catalog_repository.go -destination=catalog_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/ledger_repository.go -destination=ledger_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/client_repository.go -destination=client_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/checkout_service.go -destination=checkout_service_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/cache.go -destination=cache_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/tasks.go -destination=task_enqueuer_mock.go -package=mocks
