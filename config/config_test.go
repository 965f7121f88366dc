package config

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":          "9090",
		"BAD_INT":       "nine",
		"SEED":          "true",
		"TTL":           "45",
		"ORIGINS":       "http://a.test, http://b.test,,",
		"EMPTY_STRING":  "",
		"ONLY_COMMAS":   " , ,",
		"NEGATIVE_TIME": "-3",
	}

	if got := GetString(cfg, "PORT", "8080"); got != "9090" {
		t.Errorf("GetString = %q, want 9090", got)
	}
	if got := GetString(cfg, "EMPTY_STRING", "fallback"); got != "fallback" {
		t.Errorf("GetString on empty value = %q, want fallback", got)
	}
	if got := GetInt(cfg, "PORT", 1); got != 9090 {
		t.Errorf("GetInt = %d, want 9090", got)
	}
	if got := GetInt(cfg, "BAD_INT", 7); got != 7 {
		t.Errorf("GetInt on bad value = %d, want 7", got)
	}
	if got := GetBool(cfg, "SEED", false); !got {
		t.Error("GetBool = false, want true")
	}
	if got := GetBool(cfg, "MISSING", true); !got {
		t.Error("GetBool on missing key should return default")
	}
	if got := GetDuration(cfg, "TTL", time.Minute, time.Second); got != 45*time.Minute {
		t.Errorf("GetDuration = %v, want 45m", got)
	}
	if got := GetDuration(cfg, "NEGATIVE_TIME", time.Minute, time.Second); got != time.Second {
		t.Errorf("GetDuration on negative value = %v, want default", got)
	}

	want := []string{"http://a.test", "http://b.test"}
	if got := GetStringSlice(cfg, "ORIGINS", nil); !reflect.DeepEqual(got, want) {
		t.Errorf("GetStringSlice = %v, want %v", got, want)
	}
	if got := GetStringSlice(cfg, "ONLY_COMMAS", []string{"*"}); !reflect.DeepEqual(got, []string{"*"}) {
		t.Errorf("GetStringSlice on blank entries = %v, want default", got)
	}
	if got := GetString(nil, "PORT", "8080"); got != "8080" {
		t.Errorf("GetString on nil config = %q, want default", got)
	}
}

type fakeParameterGetter struct {
	value string
	err   error
	asked string
}

func (f *fakeParameterGetter) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.asked = aws.ToString(params.Name)
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(f.value)}}, nil
}

func TestResolveSecret(t *testing.T) {
	ctx := context.Background()

	t.Run("from environment", func(t *testing.T) {
		got, err := ResolveSecret(ctx, map[string]string{"JWT_SECRET": "env-secret"}, "JWT_SECRET", nil)
		if err != nil || got != "env-secret" {
			t.Fatalf("ResolveSecret = %q, %v", got, err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := ResolveSecret(ctx, map[string]string{}, "JWT_SECRET", nil); err == nil {
			t.Fatal("expected error for missing secret")
		}
	})

	t.Run("from ssm", func(t *testing.T) {
		client := &fakeParameterGetter{value: "ssm-secret"}
		cfg := map[string]string{"JWT_SECRET": "ignored", "JWT_SECRET_SSM_PARAMETER": "/hackathons/jwt"}
		got, err := ResolveSecret(ctx, cfg, "JWT_SECRET", client)
		if err != nil || got != "ssm-secret" {
			t.Fatalf("ResolveSecret = %q, %v", got, err)
		}
		if client.asked != "/hackathons/jwt" {
			t.Errorf("asked for %q", client.asked)
		}
	})

	t.Run("ssm failure", func(t *testing.T) {
		client := &fakeParameterGetter{err: errors.New("access denied")}
		cfg := map[string]string{"JWT_SECRET_SSM_PARAMETER": "/hackathons/jwt"}
		if _, err := ResolveSecret(ctx, cfg, "JWT_SECRET", client); err == nil {
			t.Fatal("expected error when SSM fails")
		}
	})
}
