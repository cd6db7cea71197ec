package e

// Constants in here define error codes that are unique to a package/function.
// The first two characters define the package, within this repo, and the
// second two characters define the file/function within that package. When
// creating an error, append a two character id that is unique within that
// file, i.e. ECode040201 = e.Code0402 + "01".
//
// Valid values for the characters are: 0-9 and A-Z.

const (
	// package: sql
	Code0201 = "0201" // package:sql | sql/sql.go
	Code0202 = "0202" // package:sql | sql/row.go

	// package: scheduler
	Code0401 = "0401" // package:scheduler | scheduler/client.go
	Code0402 = "0402" // package:scheduler | scheduler/envelope.go
	Code0403 = "0403" // package:scheduler | scheduler/project.go
	Code0404 = "0404" // package:scheduler | scheduler/process.go
	Code0405 = "0405" // package:scheduler | scheduler/task.go
	Code0406 = "0406" // package:scheduler | scheduler/executor.go
	Code0407 = "0407" // package:scheduler | scheduler/schedule.go

	// package: naming
	Code0501 = "0501" // package:naming | naming/naming.go

	// package: taskparam
	Code0601 = "0601" // package:taskparam | taskparam/taskparam.go

	// package: catalogue
	Code0701 = "0701" // package:catalogue | catalogue/postgres.go

	// package: kafka
	Code0800 = "0800" // package:kafka | kafka/connection.go
	Code0801 = "0801" // package:kafka/aws/ec2 | kafka/aws/ec2/sasl.go

	// package: event
	Code0901 = "0901" // package:event | event/kafka.go

	// package: reconcile
	Code0A01 = "0A01" // package:reconcile | reconcile/service.go
	Code0A02 = "0A02" // package:reconcile | reconcile/task.go
	Code0A03 = "0A03" // package:reconcile | reconcile/process.go
	Code0A04 = "0A04" // package:reconcile | reconcile/schedule.go
	Code0A05 = "0A05" // package:reconcile | reconcile/catalogue.go

	// package: config
	Code0B01 = "0B01" // package:config | config/config.go

	// package: main
	Code0C01 = "0C01" // package:main | cmd/dsbridge/app.go
	Code0C02 = "0C02" // package:main | cmd/dsbridge/commands.go
)
