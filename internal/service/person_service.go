package service

import (
	"time"

	"cafe-pos/internal/domain"
)

// PersonService is the visitor directory.
type PersonService struct {
	repo PersonRepository
}

func NewPersonService(repo PersonRepository) *PersonService {
	return &PersonService{repo: repo}
}

func (s *PersonService) Create(req *domain.CreatePersonRequest) (*domain.PersonView, error) {
	if req.Name == "" || req.PhoneNumber == "" || req.Place == "" {
		return nil, domain.ErrValidation
	}

	person := &domain.Person{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Place:       req.Place,
		DateVisited: time.Now().UTC(),
	}
	if err := s.repo.CreatePerson(person); err != nil {
		return nil, err
	}

	view := person.View()
	return &view, nil
}

func (s *PersonService) List() ([]domain.PersonView, error) {
	persons, err := s.repo.ListPersons()
	if err != nil {
		return nil, err
	}
	return personViews(persons), nil
}

// Search matches by name substring. An empty query returns an empty list
// without touching storage.
func (s *PersonService) Search(query string) ([]domain.PersonView, error) {
	if query == "" {
		return []domain.PersonView{}, nil
	}
	persons, err := s.repo.SearchPersons(query)
	if err != nil {
		return nil, err
	}
	return personViews(persons), nil
}

func personViews(persons []domain.Person) []domain.PersonView {
	result := []domain.PersonView{}
	for i := range persons {
		result = append(result, persons[i].View())
	}
	return result
}

var _ PersonInterface = (*PersonService)(nil)
