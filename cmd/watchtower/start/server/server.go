package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/cache"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/cli"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/common"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/config"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/database"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/queue"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/server"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var flags cli.Flags = config.GetListenAddrFlags(54321).
	Append(config.GetMysqlFlags()).
	Append(config.GetRedisFlags()).
	Append(config.GetNatsFlags()).
	Append(cli.Flags{
		{
			Name:         "enable-intake",
			DefaultValue: false,
			Usage:        "enables the queue based event intake consumer",
			Type:         cli.FlagTypeBool,
		},
		{
			Name:         "skip-migrations",
			DefaultValue: false,
			Usage:        "skips running schema migrations on startup",
			Type:         cli.FlagTypeBool,
		},
	})

func init() {
	flags.AddToCommand(Command)
}

var Command = &cobra.Command{
	Use:     "server",
	Aliases: []string{"s"},
	Short:   "Starts the watchtower gateway",
	Long:    "Starts the watchtower gateway which serves the resource and dashboard endpoints that the client commands talk to",
	PreRun: func(cmd *cobra.Command, args []string) {
		flags.BindViper(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logrus.Debugf("starting logging engine...")
		serviceLogs := make(chan common.ServiceLog, 64)
		common.StartServiceLogLoop(serviceLogs)
		logrus.Debugf("started logging engine")

		logrus.Infof("establishing connection to database...")
		connectionId := "watchtower/server"
		databaseConnection, err := database.ConnectMysql(database.ConnectOpts{
			ConnectionId: connectionId,
			Host:         viper.GetString(config.MysqlHost),
			Port:         viper.GetInt(config.MysqlPort),
			Username:     viper.GetString(config.MysqlUsername),
			Password:     viper.GetString(config.MysqlPassword),
			Database:     viper.GetString(config.MysqlDatabase),
		})
		if err != nil {
			return fmt.Errorf("failed to establish connection to database: %w", err)
		}
		logrus.Debugf("established connection to database")

		if !viper.GetBool("skip-migrations") {
			logrus.Infof("running schema migrations...")
			migrationOutput, err := server.MigrateDatabase(server.MigrateDatabaseOpts{
				Connection:  databaseConnection,
				ServiceLogs: serviceLogs,
			})
			if err != nil {
				return fmt.Errorf("failed to run schema migrations: %w", err)
			}
			logrus.Infof("schema is at version[%v]", migrationOutput.PostMigrationVersion)
		}

		logrus.Infof("starting connection freshness verifier...")
		databaseConnectionOk := true
		databaseConnectionStatusLastUpdatedAt := time.Now()
		var databaseConnectionStatusMutex sync.Mutex
		go func() {
			for {
				statusUpdate := true
				if err := database.CheckMysqlConnection(connectionId); err != nil {
					logrus.Errorf("failed to verify database connection[%s]: %s", connectionId, err)
					statusUpdate = false
				}
				databaseConnectionStatusMutex.Lock()
				if statusUpdate != databaseConnectionOk {
					databaseConnectionStatusLastUpdatedAt = time.Now()
					logrus.Warnf("database connection freshness status switched to '%v'", statusUpdate)
				}
				databaseConnectionOk = statusUpdate
				databaseConnectionStatusMutex.Unlock()
				<-time.After(3 * time.Second)
			}
		}()

		logrus.Infof("establishing connection to cache...")
		if err := cache.InitRedis(cache.InitRedisOpts{
			Addr:        viper.GetString(config.RedisAddr),
			Username:    viper.GetString(config.RedisUsername),
			Password:    viper.GetString(config.RedisPassword),
			ServiceLogs: serviceLogs,
		}); err != nil {
			return fmt.Errorf("failed to initialise redis cache: %w", err)
		}
		logrus.Debugf("established connection to cache")

		if viper.GetBool("enable-intake") {
			logrus.Infof("establishing connection to queue...")
			natsInstance, err := queue.InitNats(queue.InitNatsOpts{
				Id:          "watchtower/server",
				Addr:        viper.GetString(config.NatsAddr),
				Username:    viper.GetString(config.NatsUsername),
				Password:    viper.GetString(config.NatsPassword),
				NKey:        viper.GetString(config.NatsNkeyValue),
				ServiceLogs: serviceLogs,
			})
			if err != nil {
				return fmt.Errorf("failed to initialise queue client: %w", err)
			}
			if err := natsInstance.Connect(); err != nil {
				return fmt.Errorf("failed to connect to queue: %w", err)
			}
			logrus.Debugf("established connection to queue")
			go func() {
				if err := server.StartEventIntake(server.StartEventIntakeOpts{
					Context:            cmd.Context(),
					DatabaseConnection: databaseConnection,
					QueueConnection:    natsInstance,
					ServiceLogs:        serviceLogs,
				}); err != nil {
					logrus.Errorf("event intake stopped: %s", err)
				}
			}()
			logrus.Infof("event intake consumer is running")
		}

		logrus.Infof("initialising application...")
		handler, err := server.GetHttpApplication(server.HttpApplicationOpts{
			CacheConnection:    cache.Get(),
			DatabaseConnection: databaseConnection,
			ReadinessChecks: []func() error{
				func() error {
					databaseConnectionStatusMutex.Lock()
					defer databaseConnectionStatusMutex.Unlock()
					if !databaseConnectionOk {
						return fmt.Errorf("database connection is pending restoration")
					}
					return nil
				},
			},
			LivenessChecks: []func() error{
				func() error {
					databaseConnectionStatusMutex.Lock()
					defer databaseConnectionStatusMutex.Unlock()
					if !databaseConnectionOk && databaseConnectionStatusLastUpdatedAt.Before(time.Now().Add(-30*time.Second)) {
						return fmt.Errorf("database connection is invalid")
					}
					return nil
				},
			},
			ServiceLogs: serviceLogs,
		})
		if err != nil {
			return fmt.Errorf("failed to initialise application: %w", err)
		}
		logrus.Debugf("initialised application")

		logrus.Infof("initialising application server...")
		httpServerDone := make(chan common.Done)
		listenAddress := viper.GetString("listen-addr")
		httpServer, err := common.NewHttpServer(common.NewHttpServerOpts{
			Addr:        listenAddress,
			Done:        httpServerDone,
			Handler:     handler,
			ServiceLogs: serviceLogs,
		})
		if err != nil {
			return fmt.Errorf("failed to create new http server: %w", err)
		}
		logrus.Infof("starting server on addr[%s]...", listenAddress)
		if err := httpServer.Start(); err != nil {
			return fmt.Errorf("failed to start http server: %w", err)
		}
		return nil
	},
}
