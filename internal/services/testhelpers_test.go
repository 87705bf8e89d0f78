package services

import (
	"fmt"
	"testing"

	"gescom/internal/models"
	"gescom/internal/repository"
	"gescom/pkg/remote"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gescom/internal/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
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
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// seedEntreprise creates an entreprise with one profession and one admin
// account ("admin@test.local" / "password123").
func seedEntreprise(t *testing.T, db *gorm.DB) (models.Entreprise, models.Profession, models.Utilisateur) {
	t.Helper()
	entreprise := models.Entreprise{
		Nom:      "Test SARL",
		Email:    "contact@test.local",
		Ref:      "TST-001",
		Activite: "Commerce",
	}
	if err := db.Create(&entreprise).Error; err != nil {
		t.Fatalf("failed to seed entreprise: %v", err)
	}
	profession := models.Profession{
		Poste:        "Gérant",
		Salaire:      100000,
		IDEntreprise: entreprise.ID,
	}
	if err := db.Create(&profession).Error; err != nil {
		t.Fatalf("failed to seed profession: %v", err)
	}
	hash, err := utils.HashPassword("password123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash seed password: %v", err)
	}
	user := models.Utilisateur{
		Nom:          "Admin Test",
		Email:        "admin@test.local",
		MotDePasse:   hash,
		Role:         models.RoleAdmin,
		IDProfession: profession.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return entreprise, profession, user
}

func adminSession(entreprise models.Entreprise, user models.Utilisateur) models.Session {
	return models.Session{
		UserID:       user.ID,
		Email:        user.Email,
		Nom:          user.Nom,
		Role:         user.Role,
		IDEntreprise: entreprise.ID,
	}
}

func seedProduct(t *testing.T, db *gorm.DB, idEntreprise uint, quantite int) models.Produit {
	t.Helper()
	produit := models.Produit{
		Numero:       fmt.Sprintf("P-%s", t.Name()),
		Nom:          "Sac de riz",
		PrixAchat:    500,
		PrixVente:    1000,
		Type:         "Alimentaire",
		Quantite:     quantite,
		IDEntreprise: idEntreprise,
	}
	if err := db.Create(&produit).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return produit
}

// newQueueOnlySyncService builds a sync service whose remote points nowhere.
// Enqueue never touches the network, so this is enough for services that only
// write outbox entries.
func newQueueOnlySyncService(db *gorm.DB) SyncService {
	return NewSyncService(
		db,
		repository.NewSyncRepository(db),
		repository.NewEntrepriseRepository(db),
		remote.NewClient("http://127.0.0.1:0", 0),
		NewTokenSource(),
		zerolog.Nop(),
	)
}

// testDeps bundles the usual fixture: a database with one entreprise, one
// admin account, one product and the matching session.
type testDeps struct {
	db      *gorm.DB
	ent     models.Entreprise
	user    models.Utilisateur
	produit models.Produit
	session models.Session
}

func newDeps(t *testing.T) *testDeps {
	t.Helper()
	db := newTestDB(t)
	ent, _, user := seedEntreprise(t, db)
	produit := seedProduct(t, db, ent.ID, 10)
	return &testDeps{
		db:      db,
		ent:     ent,
		user:    user,
		produit: produit,
		session: adminSession(ent, user),
	}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}
