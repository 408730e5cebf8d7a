package job

import (
	"inkpress/database"
	"inkpress/logger"
	"inkpress/util/common"
)

// DBCheckpointJob flushes the sqlite write-ahead log back into the main
// database file so it does not grow without bound.
type DBCheckpointJob struct{}

func NewDBCheckpointJob() *DBCheckpointJob {
	return new(DBCheckpointJob)
}

// Here Run is an interface method of the cron Job interface
func (j *DBCheckpointJob) Run() {
	defer common.Recover("db checkpoint job")

	if err := database.Checkpoint(); err != nil {
		logger.Warning("db checkpoint job err:", err)
	}
}
