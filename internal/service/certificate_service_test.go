package service

import (
	"testing"

	"course_market_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCertificateWhileIncomplete(t *testing.T) {
	env := newTestEnv(t)
	course, lessons := env.createCourse(t, true, 3)
	userID := model.GenerateUUID()

	cert, err := env.certificate.EnsureCertificate(userID, course.ID, 3, []string{lessons[0].ID})
	require.NoError(t, err)
	assert.Nil(t, cert)

	var count int64
	require.NoError(t, env.db.Model(&model.Certificate{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEnsureCertificateIssuesExactlyOnce(t *testing.T) {
	env := newTestEnv(t)
	course, lessons := env.createCourse(t, true, 2)
	userID := model.GenerateUUID()
	completed := []string{lessons[0].ID, lessons[1].ID}

	first, err := env.certificate.EnsureCertificate(userID, course.ID, 2, completed)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, CertificateURL(course.ID, userID), first.CertificateURL)
	assert.False(t, first.IssuedAt.IsZero())

	second, err := env.certificate.EnsureCertificate(userID, course.ID, 2, completed)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, env.db.Model(&model.Certificate{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureCertificateNeverForEmptyCourse(t *testing.T) {
	env := newTestEnv(t)
	course, _ := env.createCourse(t, true, 0)

	cert, err := env.certificate.EnsureCertificate(model.GenerateUUID(), course.ID, 0, nil)
	require.NoError(t, err)
	assert.Nil(t, cert)
}

func TestCertificateURLIsDeterministic(t *testing.T) {
	assert.Equal(t, "/certificate/c1/u1", CertificateURL("c1", "u1"))
	assert.Equal(t, CertificateURL("c1", "u1"), CertificateURL("c1", "u1"))
}
