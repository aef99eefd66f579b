package render

import "raft/internal/scene"

// GLSL 4.10 core sources. Attribute locations: 0 position, 1 normal, 2 UV.
// Sampler units: 0 for 2D textures, 1 for the skybox cube in the solid program.

// SolidVertexSrc transforms lit meshes and forwards world position and normal.
const SolidVertexSrc = `#version 410 core

layout(location = 0) in vec3 a_position;
layout(location = 1) in vec3 a_normal;
layout(location = 2) in vec2 a_texCoord;

uniform mat4 u_model;
uniform mat4 u_view;
uniform mat4 u_projection;

out vec3 v_normal;
out vec3 v_fragPos;
out vec2 v_texCoord;

void main() {
    gl_Position = u_projection * u_view * u_model * vec4(a_position, 1.0);
    v_fragPos = vec3(u_model * vec4(a_position, 1.0));
    v_normal = mat3(u_model) * a_normal;
    v_texCoord = a_texCoord;
}
` + "\x00"

// SolidFragmentSrc is Phong with a directional sun and an attenuated torch,
// optionally mirroring the skybox.
const SolidFragmentSrc = `#version 410 core

in vec3 v_normal;
in vec3 v_fragPos;
in vec2 v_texCoord;

uniform vec3 u_viewPos;
uniform vec3 u_sunDir;
uniform vec3 u_sunColor;
uniform vec3 u_torchPos;
uniform vec3 u_torchColor;

uniform sampler2D u_texture;
uniform bool u_useTexture;
uniform vec3 u_objectColor;

uniform samplerCube u_skybox;
uniform bool u_useReflection;
uniform float u_reflectivity;

out vec4 outColor;

vec3 calcLight(vec3 lightDir, vec3 lightColor, vec3 normal, vec3 viewDir, float specularStrength, float shininess) {
    float diff = max(dot(normal, lightDir), 0.0);
    vec3 diffuse = diff * lightColor;
    vec3 reflectDir = reflect(-lightDir, normal);
    float spec = pow(max(dot(viewDir, reflectDir), 0.0), shininess);
    return diffuse + specularStrength * spec * lightColor;
}

void main() {
    vec4 baseColor = u_useTexture ? texture(u_texture, v_texCoord) : vec4(u_objectColor, 1.0);

    vec3 norm = normalize(v_normal);
    vec3 viewDir = normalize(u_viewPos - v_fragPos);

    vec3 lighting = calcLight(normalize(u_sunDir), u_sunColor, norm, viewDir, 0.8, 64.0);

    vec3 toTorch = u_torchPos - v_fragPos;
    float dist = length(toTorch);
    float attenuation = 1.0 / (1.0 + 0.1 * dist + 3.0 * dist * dist);
    lighting += calcLight(normalize(toTorch), u_torchColor, norm, viewDir, 2.0, 128.0) * attenuation * 2.5;

    vec3 ambient = vec3(0.02, 0.02, 0.05) * baseColor.rgb;
    vec3 color = ambient + lighting * baseColor.rgb;

    if (u_useReflection) {
        vec3 r = reflect(normalize(v_fragPos - u_viewPos), norm);
        color = mix(color, texture(u_skybox, r).rgb, u_reflectivity);
    }
    outColor = vec4(color, baseColor.a);
}
` + "\x00"

// SurfaceVertexSrc displaces the flat grid by the wave field. Vertices near the
// grid plane (|y| < 2) are displaced; z is scrolled by time * u_speedZ.
var SurfaceVertexSrc = `#version 410 core

layout(location = 0) in vec3 a_position;
layout(location = 2) in vec2 a_texCoord;

uniform mat4 u_model;
uniform mat4 u_view;
uniform mat4 u_projection;
uniform float u_time;
uniform float u_speedZ;

out vec3 v_fragPos;
out float v_waveHeight;
out vec2 v_texCoord;
out float v_dist;

` + scene.WaveGLSL() + `
void main() {
    vec3 pos = a_position;
    float h = 0.0;
    if (pos.y > -2.0 && pos.y < 2.0) {
        h = calculateWave(pos.x, pos.z + u_time * u_speedZ, u_time);
        pos.y += h;
    }

    vec4 worldPos = u_model * vec4(pos, 1.0);
    v_fragPos = vec3(worldPos);
    v_waveHeight = h;
    v_texCoord = a_texCoord;

    gl_Position = u_projection * u_view * worldPos;
    v_dist = gl_Position.w;
}
` + "\x00"

// SurfaceFragmentSrc shades water (height tint, foam, torch glint) or the sail
// (torch-lit cloth), both fogged by clip-space distance.
const SurfaceFragmentSrc = `#version 410 core

in vec3 v_fragPos;
in float v_waveHeight;
in vec2 v_texCoord;
in float v_dist;

uniform bool u_isWater;
uniform vec3 u_lightPos;
uniform vec3 u_viewPos;
uniform vec3 u_torchPos;
uniform vec3 u_torchColor;
uniform sampler2D u_texture;
uniform bool u_useTexture;
uniform vec4 u_baseColor;

out vec4 outColor;

void main() {
    vec3 viewDir = normalize(u_viewPos - v_fragPos);
    vec3 fogColor = vec3(0.1, 0.1, 0.15);
    float fogFactor = smoothstep(20.0, 200.0, v_dist);

    if (u_isWater) {
        vec3 deepColor = vec3(0.01, 0.03, 0.1);
        vec3 shallowColor = vec3(0.0, 0.2, 0.3);
        vec3 waterColor = mix(deepColor, shallowColor, smoothstep(-0.5, 0.8, v_waveHeight));
        if (v_waveHeight > 0.6) {
            waterColor = mix(waterColor, vec3(0.8, 0.9, 1.0), 0.5);
        }

        vec3 norm = normalize(vec3(v_waveHeight * 0.5, 1.0, 0.0));
        vec3 toTorch = u_torchPos - v_fragPos;
        float dist = length(toTorch);
        float att = 1.0 / (1.0 + 0.1 * dist + 1.5 * dist * dist);
        vec3 torchReflect = reflect(-normalize(toTorch), norm);
        float spec = pow(max(dot(viewDir, torchReflect), 0.0), 32.0);
        vec3 specular = u_torchColor * spec * 2.0 * att;

        outColor = vec4(mix(waterColor + specular, fogColor, fogFactor), 0.95);
        return;
    }

    vec4 texColor = u_useTexture ? texture(u_texture, v_texCoord) : u_baseColor;
    float dist = length(u_torchPos - v_fragPos);
    float att = 1.0 / (1.0 + 0.1 * dist + 3.0 * dist * dist);
    vec3 lighting = u_torchColor * att * 2.0;
    vec3 objColor = (vec3(0.1) + lighting) * texColor.rgb;
    outColor = vec4(mix(objColor, fogColor, fogFactor), texColor.a);
}
` + "\x00"

// SkyboxVertexSrc drops the view translation and writes z = w so the cube sits
// on the far plane.
const SkyboxVertexSrc = `#version 410 core

layout(location = 0) in vec3 a_position;

uniform mat4 u_projection;
uniform mat4 u_view;

out vec3 v_texCoord;

void main() {
    v_texCoord = a_position;
    mat4 view = mat4(mat3(u_view));
    vec4 pos = u_projection * view * vec4(a_position, 1.0);
    gl_Position = pos.xyww;
}
` + "\x00"

// SkyboxFragmentSrc samples the environment cube unlit.
const SkyboxFragmentSrc = `#version 410 core

in vec3 v_texCoord;

uniform samplerCube u_skybox;

out vec4 outColor;

void main() {
    outColor = texture(u_skybox, v_texCoord);
}
` + "\x00"

// Uniform names shared by the programs.
const (
	UModel         = "u_model"
	UView          = "u_view"
	UProjection    = "u_projection"
	UViewPos       = "u_viewPos"
	USunDir        = "u_sunDir"
	USunColor      = "u_sunColor"
	UTorchPos      = "u_torchPos"
	UTorchColor    = "u_torchColor"
	UTexture       = "u_texture"
	UUseTexture    = "u_useTexture"
	UObjectColor   = "u_objectColor"
	UUseReflection = "u_useReflection"
	UReflectivity  = "u_reflectivity"
	USkybox        = "u_skybox"
	UTime          = "u_time"
	USpeedZ        = "u_speedZ"
	UIsWater       = "u_isWater"
	UBaseColor     = "u_baseColor"
	ULightPos      = "u_lightPos"
)

// Texture units.
const (
	TextureUnit = 0
	SkyboxUnit  = 1
)
