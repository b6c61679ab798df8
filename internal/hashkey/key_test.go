package hashkey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artguard/internal/hashkey"
)

// Reference values computed as int(sha256(f"{seed}:{salt}:{id}").hexdigest()[:16], 16).
func TestSHA256_ReferenceValues(t *testing.T) {
	cases := []struct {
		seed     int64
		id, salt string
		want     uint64
	}{
		{17, "img-1", "outer", 6029234824084771100},
		{99, "img-1", "inner:fold=0", 10130721510340703321},
		{0, "", "", 15015173012039075288},
		{-5, "x", "salt", 4570651108022633325},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, hashkey.SHA256(tc.seed, tc.id, tc.salt), "%d:%s:%s", tc.seed, tc.salt, tc.id)
		assert.Equal(t, tc.want, hashkey.Key(tc.seed, tc.id, tc.salt))
	}
}

func TestBLAKE2b_ReferenceValue(t *testing.T) {
	assert.Equal(t, uint64(10389288417328217485), hashkey.BLAKE2b(17, "img-1", "outer"))
}

func TestKey_SensitiveToEveryInput(t *testing.T) {
	base := hashkey.Key(1, "a", "s")
	assert.NotEqual(t, base, hashkey.Key(2, "a", "s"))
	assert.NotEqual(t, base, hashkey.Key(1, "b", "s"))
	assert.NotEqual(t, base, hashkey.Key(1, "a", "t"))
	assert.Equal(t, base, hashkey.Key(1, "a", "s"))
}

func TestLookup(t *testing.T) {
	f, err := hashkey.Lookup("")
	require.NoError(t, err)
	assert.Equal(t, hashkey.SHA256(3, "x", "y"), f(3, "x", "y"))

	f, err = hashkey.Lookup(hashkey.AlgorithmBLAKE2b)
	require.NoError(t, err)
	assert.Equal(t, hashkey.BLAKE2b(3, "x", "y"), f(3, "x", "y"))

	_, err = hashkey.Lookup("md5")
	require.ErrorIs(t, err, hashkey.ErrUnknownAlgorithm)
}

func TestSortIDs_IndependentOfInputOrder(t *testing.T) {
	a := []string{"e", "d", "c", "b", "a", "f", "g"}
	b := []string{"a", "b", "c", "d", "e", "f", "g"}
	hashkey.SortIDs(a, hashkey.Key, 7, "outer")
	hashkey.SortIDs(b, hashkey.Key, 7, "outer")
	assert.Equal(t, a, b)

	for i := 1; i < len(a); i++ {
		assert.LessOrEqual(t, hashkey.Key(7, a[i-1], "outer"), hashkey.Key(7, a[i], "outer"))
	}
}

func TestSortIDs_TiesBrokenByID(t *testing.T) {
	constant := func(int64, string, string) uint64 { return 42 }
	ids := []string{"c", "a", "b"}
	hashkey.SortIDs(ids, constant, 0, "")
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestFingerprint(t *testing.T) {
	fp := hashkey.Fingerprint([]string{"b", "a"}, "k=5")
	assert.Len(t, fp, 20)
	assert.Equal(t, fp, hashkey.Fingerprint([]string{"a", "b"}, "k=5"))
	assert.NotEqual(t, fp, hashkey.Fingerprint([]string{"a", "b"}, "k=4"))
	assert.NotEqual(t, hashkey.Fingerprint([]string{"ab"}), hashkey.Fingerprint([]string{"a", "b"}))
}
