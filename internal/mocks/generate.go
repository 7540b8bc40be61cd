package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/player --output domain/player --outpkg playermock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/team --output domain/team --outpkg teammock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/attendance --output domain/attendance --outpkg attendancemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/coach --output domain/coach --outpkg coachmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/clubsettings --output domain/clubsettings --outpkg clubsettingsmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name CredentialVerifier --dir ../domain/auth --output domain/auth --outpkg authmock --filename credential_verifier_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name SessionIssuer --dir ../domain/auth --output domain/auth --outpkg authmock --filename session_issuer_mock.go
