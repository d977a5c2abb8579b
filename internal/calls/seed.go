package calls

import (
	"context"
	"fmt"
)

func strp(s string) *string { return &s }

// SeedData inserts a handful of sample calls.
func (s *Service) SeedData(ctx context.Context) error {
	seeds := []Input{
		{Date: "2024-01-08", Heure: "08:45", Appelant: strp("Awa Koné"), Appele: "Accueil", Contact: "0701020304",
			Filiere: strp("Informatique"), Critere: strp("externe"), MaitriseInfo: "oui", DernierDiplome: "BAC"},
		{Date: "2024-01-08", Heure: "10:15", Appelant: strp("Jean Dupont"), Appele: "Secrétariat", Contact: "jean.dupont@mail.com",
			Filiere: strp("Gestion"), Critere: strp("interne"), DejaPigier: true, MaitriseInfo: "non", DernierDiplome: "BTS"},
		{Date: "2024-01-09", Heure: "14:00", Appele: "Direction", Contact: "0505050505",
			Filiere: strp("Communication"), Critere: strp("externe"), MaitriseInfo: "oui", DernierDiplome: "Licence"},
		{Date: "2024-01-10", Heure: "09:30", Appelant: strp("Éric N'Guessan"), Appele: "Marie", Contact: "0600000000",
			Filiere: strp("Informatique"), Critere: strp("interne"), DejaPigier: true, MaitriseInfo: "oui", DernierDiplome: "BAC"},
		{Date: "2024-01-11", Heure: "16:20", Appelant: strp("Fatou Diallo"), Appele: "Accueil", Contact: "0102030405",
			Filiere: strp("Finance"), Critere: strp("externe"), MaitriseInfo: "non", DernierDiplome: "Master"},
	}
	for i := range seeds {
		if _, err := s.Create(ctx, &seeds[i]); err != nil {
			return fmt.Errorf("seed %s %s: %w", seeds[i].Date, seeds[i].Heure, err)
		}
	}
	return nil
}
