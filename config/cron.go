package config

// CronJob pairs a schedule with a job function.
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// CronJobs is a static extension point for jobs that must not go through the
// runtime registry. Built-in jobs register themselves via cron.Register.
var CronJobs = map[string]CronJob{}
