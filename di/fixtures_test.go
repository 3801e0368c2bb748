package di_test

// Tiny fixture types shared by the tests and benchmarks in this package.
// They mimic a consumer (userLogic) that depends on a store and a mail client.

type userStore struct {
	DSN string
}

type mailClient struct {
	Host string
}

type auditLog struct {
	Level string
}

type userLogic struct {
	Store *userStore
	Mail  *mailClient
	Audit *auditLog
}
