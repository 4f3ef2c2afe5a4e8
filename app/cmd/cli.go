package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Rakhulsr/go-motoshop/app/configs"
	"github.com/Rakhulsr/go-motoshop/app/db/fakers"
	"github.com/Rakhulsr/go-motoshop/app/db/seeders"
	"github.com/Rakhulsr/go-motoshop/app/models/migrations"
	"github.com/Rakhulsr/go-motoshop/app/repositories"
	"github.com/urfave/cli/v3"
)

func RunCli(env configs.ENV) {
	cmd := &cli.Command{
		Name:  "motoshop",
		Usage: "motoshop backend maintenance commands",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Seed demo categories, products, services, news and users",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "admin-email", Value: seeders.DefaultOptions().AdminEmail},
					&cli.StringFlag{Name: "admin-password", Value: seeders.DefaultOptions().AdminPassword},
					&cli.IntFlag{Name: "products", Usage: "products per leaf category (default 4)"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}

					opts := seeders.DefaultOptions()
					opts.AdminEmail = c.String("admin-email")
					opts.AdminPassword = c.String("admin-password")
					if n := c.Int("products"); n > 0 {
						opts.ProductsPerLeaf = int(n)
					}
					if err := seeders.DBSeed(db, opts); err != nil {
						return err
					}
					log.Println("✅ Seeding complete")
					return nil
				},
			},
			{
				Name:      "create-admin",
				Usage:     "Create an admin account",
				ArgsUsage: "<email> <password>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 2 {
						return fmt.Errorf("usage: create-admin <email> <password>")
					}
					if len(c.Args().Get(1)) < 8 {
						return fmt.Errorf("password must be at least 8 characters")
					}

					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					userRepo := repositories.NewUserRepository(db)

					existing, err := userRepo.FindByEmail(ctx, c.Args().Get(0))
					if err != nil {
						return err
					}
					if existing != nil {
						return fmt.Errorf("user %s already exists", existing.Email)
					}

					admin, err := fakers.AdminFaker(c.Args().Get(0), c.Args().Get(1))
					if err != nil {
						return err
					}
					if err := userRepo.Create(ctx, admin); err != nil {
						return err
					}
					log.Printf("✅ Admin %s created", admin.Email)
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication and encryption keys for .env",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Value: ".env.keys", Usage: "file the generated keys are written to"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintSessionKeys(c.String("out")); err != nil {
						return err
					}
					log.Println("✅ Key generation complete. Please copy the keys to your .env file.")
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
