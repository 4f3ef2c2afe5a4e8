package configs

import (
	"fmt"
	"log"
	"net"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// mysqlDSN builds the driver DSN from the DB_* settings.
func mysqlDSN(env ENV) string {
	dsnConfig := mysqldriver.NewConfig()
	dsnConfig.User = env.DBUser
	dsnConfig.Passwd = env.DBPassword
	dsnConfig.Net = "tcp"
	dsnConfig.Addr = net.JoinHostPort(env.DBHost, env.DBPort)
	dsnConfig.DBName = env.DBName
	dsnConfig.ParseTime = true
	dsnConfig.Loc = time.Local
	dsnConfig.Params = map[string]string{"charset": "utf8mb4"}
	return dsnConfig.FormatDSN()
}

func OpenConnection(env ENV) (*gorm.DB, error) {

	dsn := mysqlDSN(env)

	gormConfig := &gorm.Config{}
	if !env.IsProduction() {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	maxRetries := 10
	retryDelay := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		log.Printf("Attempting to connect to database (Attempt %d/%d) at %s:%s/%s", i+1, maxRetries, env.DBHost, env.DBPort, env.DBName)
		db, err := gorm.Open(mysql.Open(dsn), gormConfig)
		if err == nil {

			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(10)
					sqlDB.SetConnMaxLifetime(30 * time.Minute)
					log.Println("✅ Database connection successful!")
					return db, nil
				}
			}

			log.Printf("❌ Failed to ping database: %v. Retrying in %v...", pingErr, retryDelay)
		} else {
			log.Printf("❌ Failed to open GORM connection: %v. Retrying in %v...", err, retryDelay)
		}

		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the database %s on %s:%s after %d retries", env.DBName, env.DBHost, env.DBPort, maxRetries)
}
