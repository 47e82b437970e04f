package users

import "context"

// UnlinkOwnedDog adapta UnlinkDog a la interfaz que declara el módulo dogs.
// Existe para evitar ciclos de imports entre módulos (dogs <-> users).
func (s *Service) UnlinkOwnedDog(ctx context.Context, ownerID, dogID string) error {
	_, err := s.UnlinkDog(ctx, ownerID, dogID)
	return err
}
