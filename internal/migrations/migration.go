package migrations

import (
	"gescom/internal/models"
	"gescom/internal/utils"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// RunMigrations applies the schema additively and seeds default data on an
// empty database. Existing rows are never dropped: the local store is the
// only copy of un-pushed work.
func RunMigrations(db *gorm.DB, bcryptCost int, log zerolog.Logger) error {
	log.Info().Msg("running database migrations")

	err := db.AutoMigrate(
		&models.Entreprise{},
		&models.Profession{},
		&models.Utilisateur{},
		&models.Conge{},
		&models.Client{},
		&models.Produit{},
		&models.Transaction{},
		&models.Commande{},
		&models.Facture{},
		&models.Activite{},
		&models.Archive{},
		&models.SyncEntry{},
		&models.SyncHistory{},
		&models.BlacklistedToken{},
		&models.PasswordReset{},
		&models.Authentication{},
	)
	if err != nil {
		return err
	}

	if err := seedDefaultData(db, bcryptCost, log); err != nil {
		return err
	}

	log.Info().Msg("database migrations completed")
	return nil
}

// seedDefaultData creates a default entreprise, profession and SUPERADMIN
// account the first time the application starts. It is a no-op whenever an
// entreprise already exists, so restarting never duplicates the seed.
func seedDefaultData(db *gorm.DB, bcryptCost int, log zerolog.Logger) error {
	var count int64
	if err := db.Model(&models.Entreprise{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		entreprise := models.Entreprise{
			Nom:      "Entreprise par défaut",
			Email:    "contact@gescom.local",
			Ref:      "GESCOM-001",
			Activite: "Commerce général",
		}
		if err := tx.Create(&entreprise).Error; err != nil {
			return err
		}

		profession := models.Profession{
			Poste:        "Direction",
			Salaire:      0,
			IDEntreprise: entreprise.ID,
		}
		if err := tx.Create(&profession).Error; err != nil {
			return err
		}

		hash, err := utils.HashPassword("admin1234", bcryptCost)
		if err != nil {
			return err
		}
		admin := models.Utilisateur{
			Nom:          "Administrateur",
			Email:        "admin@gescom.local",
			MotDePasse:   hash,
			Role:         models.RoleSuperAdmin,
			IDProfession: profession.ID,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		log.Info().Str("email", admin.Email).Msg("seeded default superadmin account")
		return nil
	})
}
