package supervisor

import (
	"log"
	"os"
)

// ILogger is the logging capability the supervisor writes to. Satisfied by
// [log.Logger]; replace it at construction with [SetLogger] to route records
// anywhere else.
type ILogger interface {
	Println(v ...any)
	Printf(format string, v ...any)
}

func defaultLogger() ILogger {
	return log.New(os.Stdout, "warden ", log.Ldate|log.Ltime|log.Lmicroseconds)
}
